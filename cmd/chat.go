package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/ev-dss/internal/chat"
	"github.com/sells-group/ev-dss/internal/scenario"
)

var (
	chatInputs    = scenario.BaseInputs()
	chatNoContext bool
)

// chatReply is the rendered result of a json or yaml chat run.
type chatReply struct {
	RelayID  string `json:"relay_id" yaml:"relay_id"`
	Question string `json:"question" yaml:"question"`
	Reply    string `json:"reply" yaml:"reply"`
}

var chatCmd = &cobra.Command{
	Use:   "chat <question>",
	Short: "Ask the scenario advisor a question",
	Long:  "Sends the question to the configured chat provider along with the scenario built from the flags, and streams the reply.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("chat"); err != nil {
			return err
		}
		relay, err := newRelay(cfg)
		if err != nil {
			return err
		}

		req, err := chatRequest(strings.Join(args, " "), chatInputs, chatNoContext)
		if err != nil {
			return err
		}

		// Table output streams straight to the terminal.
		var reply strings.Builder
		var sink io.Writer = &reply
		if outputFormat == formatTable {
			sink = io.MultiWriter(&reply, os.Stdout)
		}

		id, err := relay.Stream(cmd.Context(), req, func(text string) error {
			_, werr := io.WriteString(sink, text)
			return werr
		})
		if err != nil {
			return err
		}
		zap.L().Debug("chat: reply complete", zap.String("relay_id", id), zap.Int("chars", reply.Len()))

		if outputFormat == formatTable {
			_, _ = fmt.Fprintln(os.Stdout)
			return nil
		}
		return render(os.Stdout, outputFormat, chatReply{RelayID: id, Question: req.Messages[0].Content, Reply: reply.String()}, func(*tabwriter.Writer) {})
	},
}

// chatRequest builds a single-turn request, attaching the scenario context
// unless noContext is set.
func chatRequest(question string, in scenario.Inputs, noContext bool) (chat.Request, error) {
	req := chat.Request{
		Messages: []chat.Message{{Role: chat.RoleUser, Content: strings.TrimSpace(question)}},
	}
	if noContext {
		return req, nil
	}
	if err := in.Validate(); err != nil {
		return chat.Request{}, err
	}
	req.ScenarioContext = chat.NewScenarioContext(in, scenario.Calculate(in))
	return req, nil
}

func init() {
	addScenarioFlags(chatCmd.Flags(), &chatInputs)
	chatCmd.Flags().BoolVar(&chatNoContext, "no-context", false, "do not send the scenario context")
	rootCmd.AddCommand(chatCmd)
}
