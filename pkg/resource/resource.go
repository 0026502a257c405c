// Package resource shapes models into the JSON the API returns.
//
// A transformer picks the fields of one record:
//
//	var UserSummary = resource.TransformerFunc[models.User](func(u models.User) resource.Map {
//	    return resource.Map{"id": u.ID, "first_name": u.FirstName}
//	})
//
//	c.JSON(http.StatusOK, UserSummary.ToArray(user))
//	c.JSON(http.StatusOK, resource.Collect(UserSummary, users))
//
// Output is bare, without a data envelope.
package resource

// Map is a convenient alias for the output of ToArray.
type Map = map[string]interface{}

// Transformer converts one record into a Map.
type Transformer[T any] interface {
	ToArray(v T) Map
}

// TransformerFunc adapts a plain function to Transformer.
type TransformerFunc[T any] func(v T) Map

func (f TransformerFunc[T]) ToArray(v T) Map { return f(v) }

// Collect transforms every item, preserving order. A nil slice yields an
// empty, non-nil one so it encodes as [].
func Collect[T any](t Transformer[T], items []T) []Map {
	out := make([]Map, 0, len(items))
	for _, item := range items {
		out = append(out, t.ToArray(item))
	}
	return out
}
