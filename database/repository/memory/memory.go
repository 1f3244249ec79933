// Package memory provides in-process implementations of the repositories. They enforce
// the same unique constraints and version checks as the MongoDB indexes so services
// behave identically against either store. Used by tests and DATABASE_URL=memory://.
package memory

import (
	"go.mongodb.org/mongo-driver/bson"
)

// clone deep-copies v through its BSON encoding, so stored documents never alias
// caller memory and round-trip exactly as they would through MongoDB.
func clone[T any](v *T) *T {
	raw, err := bson.Marshal(v)
	if err != nil {
		panic(err)
	}
	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}
