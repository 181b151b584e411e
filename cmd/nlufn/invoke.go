package nlufn

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nyambati/nlufn/internal/event"
	"github.com/nyambati/nlufn/internal/handler"
	"github.com/nyambati/nlufn/internal/interpreter"
	"github.com/spf13/cobra"
)

var eventFile string
var contextFields map[string]string
var printReply bool

var invokeCmd = &cobra.Command{
	Use:   "invoke",
	Short: "invoke the handler once",
	Long: `Read an event from a file or stdin, run the handler and print the response as JSON.
With --reply the reply configured for the parsed intent is written to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readEvent(cmd.InOrStdin(), eventFile)
		if err != nil {
			return err
		}

		h, p, err := newHandler()
		if err != nil {
			return err
		}
		defer p.Close()

		c := event.Context{}
		for k, v := range contextFields {
			c[k] = v
		}

		res, err := h.Handle(cmd.Context(), event.Decode(payload), c)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(res); err != nil {
			return err
		}

		if !printReply {
			return nil
		}
		return writeReply(cmd.ErrOrStderr(), res)
	},
}

func writeReply(w io.Writer, res handler.Response) error {
	replier, err := interpreter.LoadReplies(cfg.Model.Path)
	if err != nil {
		return err
	}

	say, ok := res[handler.KeySay].(*interpreter.Result)
	if !ok {
		return fmt.Errorf("response has no parse result under %q", handler.KeySay)
	}

	reply, ok := replier.Reply(say)
	if !ok {
		logger.WithField("intent", say.Intent.Name).Warn("no reply configured for intent")
		return nil
	}
	_, err = fmt.Fprintln(w, reply)
	return err
}

func readEvent(stdin io.Reader, path string) ([]byte, error) {
	switch path {
	case "":
		return []byte("{}"), nil
	case "-":
		return io.ReadAll(stdin)
	default:
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read event file: %w", err)
		}
		return b, nil
	}
}

func init() {
	invokeCmd.Flags().StringVarP(&eventFile, "event", "e", "", "event file, - for stdin (default {})")
	invokeCmd.Flags().StringToStringVarP(&contextFields, "context", "c", nil, "context fields as key=value")
	invokeCmd.Flags().BoolVar(&printReply, "reply", false, "print the reply for the parsed intent to stderr")
	rootCmd.AddCommand(invokeCmd)
}
