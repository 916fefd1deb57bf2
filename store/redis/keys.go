package redis

// Key prefixes for primary entity storage.
const (
	prefixEvent = "agenda:evt:"
)

// Key prefixes for sorted set indexes.
const (
	zEventAll = "agenda:z:evt:all"
)

// entityKey returns the primary key for an entity.
func entityKey(prefix, id string) string {
	return prefix + id
}
