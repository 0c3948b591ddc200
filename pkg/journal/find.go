package journal

// FindByProperty returns the first element of list whose key equals value.
func FindByProperty[T any, V comparable](list []T, key func(T) V, value V) (T, bool) {
	if i := IndexByProperty(list, key, value); i >= 0 {
		return list[i], true
	}
	var zero T
	return zero, false
}

// IndexByProperty returns the index of the first element of list whose key
// equals value, or -1.
func IndexByProperty[T any, V comparable](list []T, key func(T) V, value V) int {
	for i, item := range list {
		if key(item) == value {
			return i
		}
	}
	return -1
}

// Property accessors for use with FindByProperty.
func ByID(e Entry) string    { return e.ID }
func ByTitle(e Entry) string { return e.Title }
func ByMood(e Entry) Mood    { return e.Mood }
