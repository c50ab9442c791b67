package domain

// Merge overwrites dst when src carries a value. Partial-update
// handlers decode request bodies into pointer fields and merge them
// onto the current entity, so absent fields keep their stored value.
func Merge[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// MergeOptional is Merge for fields that are themselves nullable.
func MergeOptional[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}
