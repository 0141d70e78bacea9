package phrases

import (
	"math/rand/v2"

	"github.com/leonid6372/lifery-bot/internal/common/domain"
	"github.com/leonid6372/lifery-bot/pkg/dictionary"
)

// Random picks a uniformly random phrase from the language pool. Languages
// without phrases use the default language pool.
type Random struct {
	dictionary *dictionary.Dictionary
}

func NewRandom(dictionary *dictionary.Dictionary) *Random {
	return &Random{dictionary: dictionary}
}

func (r *Random) Pick(lang domain.Language) string {
	pool := r.dictionary.For(lang).Phrases
	if len(pool) == 0 {
		pool = r.dictionary.For(domain.DefaultLanguage).Phrases
	}

	return pool[rand.IntN(len(pool))]
}
