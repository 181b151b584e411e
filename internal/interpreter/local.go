package interpreter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	fnerrors "github.com/nyambati/nlufn/internal/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	ModelFile        = "nlu.yaml"
	defaultThreshold = 0.3
)

// bigrams is the multiset of adjacent rune pairs of a normalized string.
type bigrams map[[2]rune]int

type example struct {
	text  string
	grams bigrams
}

// NewLocalLoader returns a Loader reading the keyword model from the model store.
func NewLocalLoader(logger *logrus.Entry) Loader {
	return func(ctx context.Context, path string) (Interpreter, error) {
		return LoadLocal(ctx, path, logger)
	}
}

// LoadLocal reads <path>/nlu.yaml and prepares it for parsing.
func LoadLocal(ctx context.Context, path string, logger *logrus.Entry) (*LocalInterpreter, error) {
	file := filepath.Join(path, ModelFile)
	logger = logger.WithFields(logrus.Fields{"component": "interpreter", "backend": "local", "path": file})
	logger.Info("loading model")

	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fnerrors.NewModelLoadError(path, fmt.Sprintf("%s not found", ModelFile))
		}
		return nil, fnerrors.NewModelLoadError(path, err.Error())
	}

	model := &Model{}
	if err := yaml.Unmarshal(data, model); err != nil {
		return nil, fnerrors.NewModelLoadError(path, err.Error())
	}

	if len(model.Intents) == 0 {
		return nil, fnerrors.NewModelLoadError(path, "model defines no intents")
	}

	if model.Threshold <= 0 {
		model.Threshold = defaultThreshold
	}

	examples := make(map[string][]example, len(model.Intents))
	for _, intent := range model.Intents {
		if intent.Name == "" {
			return nil, fnerrors.NewModelLoadError(path, "intent without a name")
		}
		if _, seen := examples[intent.Name]; seen {
			return nil, fnerrors.NewModelLoadError(path, fmt.Sprintf("duplicate intent %q", intent.Name))
		}
		examples[intent.Name] = []example{}
		for _, ex := range intent.Examples {
			text := normalize(ex)
			examples[intent.Name] = append(examples[intent.Name], example{text: text, grams: toBigrams(text)})
		}
	}

	logger.WithField("intents", len(model.Intents)).Info("model loaded")
	return &LocalInterpreter{model: model, examples: examples, logger: logger}, nil
}

func (l *LocalInterpreter) Parse(ctx context.Context, text string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized := normalize(text)
	grams := toBigrams(normalized)

	ranking := make([]Intent, 0, len(l.model.Intents))
	for _, intent := range l.model.Intents {
		best := 0.0
		for _, ex := range l.examples[intent.Name] {
			score := 1.0
			if ex.text != normalized {
				score = dice(grams, ex.grams)
			}
			if score > best {
				best = score
			}
		}
		ranking = append(ranking, Intent{Name: intent.Name, Confidence: best})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Confidence > ranking[j].Confidence
	})

	top := Intent{Name: FallbackIntent}
	if len(ranking) > 0 {
		top.Confidence = ranking[0].Confidence
		if ranking[0].Confidence >= l.model.Threshold {
			top.Name = ranking[0].Name
		}
	}

	l.logger.WithFields(logrus.Fields{"intent": top.Name, "confidence": top.Confidence}).Debug("parsed text")

	return &Result{
		Text:          text,
		Intent:        top,
		Entities:      l.extractEntities(text),
		IntentRanking: ranking,
	}, nil
}

// extractEntities finds every configured entity value in text. Offsets are rune indexes.
func (l *LocalInterpreter) extractEntities(text string) []Entity {
	entities := []Entity{}
	for _, entity := range l.model.Entities {
		for _, value := range entity.Values {
			if value == "" {
				continue
			}
			offset := 0
			for {
				idx := strings.Index(text[offset:], value)
				if idx < 0 {
					break
				}
				byteStart := offset + idx
				start := utf8.RuneCountInString(text[:byteStart])
				entities = append(entities, Entity{
					Entity: entity.Name,
					Value:  value,
					Start:  start,
					End:    start + utf8.RuneCountInString(value),
				})
				offset = byteStart + len(value)
			}
		}
	}

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Start < entities[j].Start
	})
	return entities
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// toBigrams splits s into adjacent rune pairs. Single-rune strings yield one
// pair padded with a zero rune so that they can still match.
func toBigrams(s string) bigrams {
	runes := []rune(s)
	grams := make(bigrams)
	switch len(runes) {
	case 0:
		return grams
	case 1:
		grams[[2]rune{runes[0], 0}]++
		return grams
	}
	for i := 0; i < len(runes)-1; i++ {
		grams[[2]rune{runes[i], runes[i+1]}]++
	}
	return grams
}

// dice is the Sørensen–Dice coefficient of two bigram multisets.
func dice(a, b bigrams) float64 {
	total := 0
	for _, n := range a {
		total += n
	}
	for _, n := range b {
		total += n
	}
	if total == 0 {
		return 0
	}

	shared := 0
	for gram, n := range a {
		shared += min(n, b[gram])
	}
	return 2 * float64(shared) / float64(total)
}
