package chat

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DoneSentinel is the data payload that ends an event stream.
const DoneSentinel = "[DONE]"

const maxEventLine = 1 << 20

// ReadEvents scans a line-oriented event stream and calls fn with the
// payload of every "data:" line. Blank lines, ":" comments and other fields
// are ignored. Reading stops at the [DONE] sentinel or end of input.
func ReadEvents(ctx context.Context, r io.Reader, fn func(data string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxEventLine)

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimPrefix(data, " ")
		if strings.TrimSpace(data) == DoneSentinel {
			return nil
		}
		if err := fn(data); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return eris.Wrap(err, "chat: read event stream")
	}
	return nil
}

type delta struct {
	Content string `json:"content"`
}

type choice struct {
	Delta delta `json:"delta"`
}

type chunk struct {
	Choices []choice `json:"choices"`
}

// ExtractDelta returns choices[0].delta.content of a completion chunk. A
// chunk without content yields "".
func ExtractDelta(data string) (string, error) {
	var c chunk
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return "", eris.Wrap(err, "chat: decode chunk")
	}
	if len(c.Choices) == 0 {
		return "", nil
	}
	return c.Choices[0].Delta.Content, nil
}

// forwardDeltas reads a completion stream and hands each non-empty delta to
// onDelta. Undecodable chunks are skipped.
func forwardDeltas(ctx context.Context, r io.Reader, onDelta func(string) error) error {
	return ReadEvents(ctx, r, func(data string) error {
		text, err := ExtractDelta(data)
		if err != nil {
			zap.L().Debug("chat: skipping undecodable chunk", zap.Error(err))
			return nil
		}
		if text == "" {
			return nil
		}
		return onDelta(text)
	})
}

// WriteDelta writes text as one completion chunk event.
func WriteDelta(w io.Writer, text string) error {
	payload, err := json.Marshal(chunk{Choices: []choice{{Delta: delta{Content: text}}}})
	if err != nil {
		return eris.Wrap(err, "chat: encode chunk")
	}
	_, err = io.WriteString(w, "data: "+string(payload)+"\n\n")
	return err
}

// WriteDone writes the terminating sentinel event.
func WriteDone(w io.Writer) error {
	_, err := io.WriteString(w, "data: "+DoneSentinel+"\n\n")
	return err
}
