package redis

// Key prefix for all game-related data
const keyPrefix = "wordsiege"

// dictionaryKey returns the Redis key for the dictionary word list
func dictionaryKey() string {
	return keyPrefix + ":dictionary"
}

// summariesKey returns the Redis key for the finished-match list
func summariesKey() string {
	return keyPrefix + ":matches"
}
