//go:generate mockgen -source=$GOFILE -destination=../mocks/mock_interpreter.go -package=mocks Interpreter
package interpreter

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
)

// FallbackIntent is reported when no intent reaches the model threshold.
const FallbackIntent = "nlu_fallback"

type Interpreter interface {
	Parse(ctx context.Context, text string) (*Result, error)
}

// Loader loads an interpreter from a model store path.
type Loader func(ctx context.Context, path string) (Interpreter, error)

type Intent struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type Entity struct {
	Entity string `json:"entity"`
	Value  string `json:"value"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// Result is the parse output, shaped like the Rasa /model/parse response.
type Result struct {
	Text          string   `json:"text"`
	Intent        Intent   `json:"intent"`
	Entities      []Entity `json:"entities"`
	IntentRanking []Intent `json:"intent_ranking,omitempty"`
}

// Model is the on-disk format of the local backend, read from <path>/nlu.yaml.
type Model struct {
	Language  string        `yaml:"language"`
	Threshold float64       `yaml:"threshold"`
	Intents   []ModelIntent `yaml:"intents"`
	Entities  []ModelEntity `yaml:"entities"`
	// Replies maps an intent name to a reply template. {time} and {<entity>}
	// placeholders are filled from the parse result.
	Replies map[string]string `yaml:"replies"`
}

type ModelIntent struct {
	Name     string   `yaml:"name"`
	Examples []string `yaml:"examples"`
}

type ModelEntity struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

type LocalInterpreter struct {
	model    *Model
	examples map[string][]example
	logger   *logrus.Entry
}

type RemoteInterpreter struct {
	endpoint string
	client   *http.Client
	logger   *logrus.Entry
}
