// Package resource provides Laravel-style API Resource transformers.
//
// A transformer decides exactly which JSON shape a model is rendered as:
//
//	type ProductResource struct{ Disk storage.Disk }
//	func (r ProductResource) ToArray(p models.Product) resource.Map {
//	    return resource.Map{"id": p.ID, "name": p.Name}
//	}
//
//	c.Success(resource.Collection(ProductResource{disk}, products))
package resource

// Map is the output of ToArray.
type Map = map[string]any

// Transformer renders one model value.
type Transformer[T any] interface {
	ToArray(v T) Map
}

// One renders a single model. A nil pointer renders as nil.
func One[T any](t Transformer[T], v *T) Map {
	if v == nil {
		return nil
	}
	return t.ToArray(*v)
}

// Collection renders items in order. The result is never nil so an empty
// collection encodes as [] rather than null.
func Collection[T any](t Transformer[T], items []T) []Map {
	out := make([]Map, 0, len(items))
	for _, item := range items {
		out = append(out, t.ToArray(item))
	}
	return out
}
