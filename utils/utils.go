package utils

// Box copies t onto the heap and returns a pointer to the copy. Useful for
// handing back a pointer to a value that would otherwise alias a struct
// field that keeps mutating after the pointer is returned (see
// (*Parser).consume, which boxes the just-consumed token instead of
// returning &p.prev).
func Box[T any](t T) *T { return &t }
