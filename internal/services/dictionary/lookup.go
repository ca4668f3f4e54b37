package dictionary

import (
	"context"
	"strings"
)

// Lookup is the dictionary capability the game engine consumes. It may be
// backed by an in-memory set, storage, or anything else; the engine treats
// it as a black box.
type Lookup interface {
	// Exists reports whether the word is in the dictionary.
	// Words are uppercase-normalized before querying.
	Exists(ctx context.Context, word string) (bool, error)
}

// PrefixLookup is an optional extension of Lookup used to prune path
// searches. Implementations that cannot answer prefix queries simply don't
// implement it; searches still work, only slower.
type PrefixLookup interface {
	Lookup
	HasPrefix(ctx context.Context, prefix string) (bool, error)
}

// AlphabetProvider is an optional extension exposing the set of letters the
// dictionary's words are built from.
type AlphabetProvider interface {
	Alphabet() []rune
}

// Normalize uppercases and trims a word for dictionary queries
func Normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

// Exists reports dictionary membership, treating any adapter failure as
// "word not found". Failing closed keeps game state consistent even when
// the backing dictionary is unavailable; the caller owns logging the error.
func Exists(ctx context.Context, l Lookup, word string) bool {
	ok, err := l.Exists(ctx, Normalize(word))
	if err != nil {
		return false
	}
	return ok
}

// HasPrefix reports whether any dictionary word starts with prefix. It is a
// pruning hint only: when the lookup does not support prefixes, or the
// prefix query fails, it returns true so the search never wrongly discards
// a branch.
func HasPrefix(ctx context.Context, l Lookup, prefix string) bool {
	pl, ok := l.(PrefixLookup)
	if !ok {
		return true
	}
	has, err := pl.HasPrefix(ctx, Normalize(prefix))
	if err != nil {
		return true
	}
	return has
}
