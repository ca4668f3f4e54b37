package bot

import (
	"github.com/nkarpov/balda-go/internal/dependencies/random"
	"github.com/nkarpov/balda-go/internal/model"
)

// Strategy names
const (
	StrategyGreedy = "greedy"
	StrategyRandom = "random"
)

// Strategy picks an AI player's move from the ranked suggestion list
// (best first). Returning false means the AI passes its turn.
type Strategy interface {
	ChooseMove(g *model.Game, suggestions []model.Suggestion) (model.Suggestion, bool)
}

// GreedyStrategy always plays the highest-scoring suggestion
type GreedyStrategy struct{}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy() *GreedyStrategy {
	return &GreedyStrategy{}
}

// ChooseMove returns the top suggestion
func (s *GreedyStrategy) ChooseMove(_ *model.Game, suggestions []model.Suggestion) (model.Suggestion, bool) {
	if len(suggestions) == 0 {
		return model.Suggestion{}, false
	}
	return suggestions[0], true
}

// RandomStrategy plays a uniformly random pick among the top suggestions,
// trading strength for variety
type RandomStrategy struct {
	random random.Random
	topK   int
}

// NewRandomStrategy creates a RandomStrategy choosing among the top k suggestions
func NewRandomStrategy(rnd random.Random, topK int) *RandomStrategy {
	if topK <= 0 {
		topK = 3
	}
	return &RandomStrategy{random: rnd, topK: topK}
}

// ChooseMove returns a random suggestion from the top k
func (s *RandomStrategy) ChooseMove(_ *model.Game, suggestions []model.Suggestion) (model.Suggestion, bool) {
	if len(suggestions) == 0 {
		return model.Suggestion{}, false
	}
	k := s.topK
	if k > len(suggestions) {
		k = len(suggestions)
	}
	return suggestions[s.random.Intn(k)], true
}

// DefaultStrategies returns the built-in strategy set
func DefaultStrategies(rnd random.Random) map[string]Strategy {
	return map[string]Strategy{
		StrategyGreedy: NewGreedyStrategy(),
		StrategyRandom: NewRandomStrategy(rnd, 3),
	}
}
