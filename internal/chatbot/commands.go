package chatbot

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"VizChat/internal/chart"
	"VizChat/internal/dataset"
)

func trimInput(text string) string {
	return strings.TrimSpace(text)
}

// handleCommand handles slash commands. Callers hold cb.mu.
func (cb *ChatBot) handleCommand(ctx context.Context, cmd string) (Reply, bool, error) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return Reply{}, false, nil
	}
	arg := strings.TrimSpace(strings.TrimPrefix(cmd, parts[0]))

	switch parts[0] {
	case "/quit", "/exit":
		return Reply{}, true, nil

	case "/help":
		return Reply{Text: commandHelp}, false, nil

	case "/new-session":
		cb.resetSession()
		return Reply{Text: "Started new session: " + cb.session.ID}, false, nil

	case "/upload":
		if arg == "" {
			return Reply{}, false, fmt.Errorf("usage: /upload <path>")
		}
		info, err := cb.loadUpload(ctx, arg)
		if err != nil {
			return Reply{}, false, err
		}
		return Reply{Text: uploadReply(info)}, false, nil

	case "/columns":
		if cb.upload == nil {
			return Reply{}, false, ErrNoUpload
		}
		return Reply{Text: columnsReply(describe(cb.upload))}, false, nil

	case "/summary":
		if cb.upload == nil {
			return Reply{}, false, ErrNoUpload
		}
		ds := cb.upload.data
		return Reply{Text: summaryReply(ds.Name, dataset.Describe(ds), ds.Names())}, false, nil

	case "/quick":
		t, err := chartArg(parts, "/quick")
		if err != nil {
			return Reply{}, false, err
		}
		reply, err := cb.quickChart(ctx, t)
		return reply, false, err

	case "/sample":
		t, err := chartArg(parts, "/sample")
		if err != nil {
			return Reply{}, false, err
		}
		return cb.sampleChart(ctx, t), false, nil

	case "/history":
		return Reply{Text: cb.historyText()}, false, nil

	case "/replay":
		if len(parts) < 2 {
			return Reply{}, false, fmt.Errorf("usage: /replay <n>")
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return Reply{}, false, fmt.Errorf("usage: /replay <n>: %w", err)
		}
		reply, err := cb.replay(ctx, n)
		return reply, false, err

	case "/auto":
		if len(parts) < 2 {
			return Reply{}, false, fmt.Errorf("usage: /auto on|off")
		}
		switch strings.ToLower(parts[1]) {
		case "on":
			cb.session.AutoDetect = true
		case "off":
			cb.session.AutoDetect = false
		default:
			return Reply{}, false, fmt.Errorf("usage: /auto on|off")
		}
		return Reply{Text: fmt.Sprintf("Auto-detect chart requests: %s", strings.ToLower(parts[1]))}, false, nil

	case "/scheme":
		if len(parts) < 2 {
			return Reply{}, false, fmt.Errorf("usage: /scheme <name>")
		}
		cb.scheme = strings.ToLower(parts[1])
		return Reply{Text: "Color scheme set to: " + cb.scheme}, false, nil

	case "/sessions":
		return cb.sessionsReply()

	case "/clear":
		cb.session.Clear()
		return Reply{Text: "Cleared messages and chart history."}, false, nil

	default:
		return Reply{}, false, fmt.Errorf("unknown command: %s (try /help)", parts[0])
	}
}

func chartArg(parts []string, cmd string) (chart.Type, error) {
	names := make([]string, 0, len(chart.Priority))
	for _, t := range chart.Types() {
		names = append(names, string(t))
	}
	usage := fmt.Sprintf("usage: %s <type> (%s)", cmd, strings.Join(names, "|"))

	if len(parts) < 2 {
		return "", fmt.Errorf("%s", usage)
	}
	t, ok := chart.Lookup(parts[1])
	if !ok {
		return "", fmt.Errorf("unknown chart type %q, %s", parts[1], usage)
	}
	return t, nil
}

func (cb *ChatBot) historyText() string {
	if len(cb.session.ChartHistory) == 0 {
		return "No charts yet."
	}
	var b strings.Builder
	b.WriteString("Charts in this session:")
	for i, e := range cb.session.ChartHistory {
		fmt.Fprintf(&b, "\n%d. %s: %s (%d rows, %s) %s",
			i+1, e.Type.Title(), e.Title, e.RowCount, e.Source, e.Timestamp.Format("2006-01-02 15:04"))
	}
	return b.String()
}

func (cb *ChatBot) sessionsReply() (Reply, bool, error) {
	if cb.store == nil {
		return Reply{Text: "No session store configured."}, false, nil
	}
	list, err := cb.store.ListSessions()
	if err != nil {
		return Reply{}, false, err
	}
	var b strings.Builder
	b.WriteString("Saved sessions:")
	for _, s := range list {
		current := ""
		if s.ID == cb.session.ID {
			current = " (current)"
		}
		fmt.Fprintf(&b, "\n%s %s - %d messages, %d charts%s",
			s.ID, s.StartTime.Format("2006-01-02 15:04"), s.Messages, s.Charts, current)
	}
	return Reply{Text: b.String()}, false, nil
}

// Run starts the interactive loop on the configured input and output
func (cb *ChatBot) Run(ctx context.Context) error {
	fmt.Fprintln(cb.out, "=== VizChat ===")
	fmt.Fprintf(cb.out, "Session: %s\n", cb.SessionID())
	fmt.Fprintln(cb.out, "Ask for a chart, type /help for commands, /quit to exit")
	fmt.Fprintln(cb.out)

	scanner := bufio.NewScanner(cb.in)
	for {
		fmt.Fprint(cb.out, "You: ")
		if !scanner.Scan() {
			break
		}

		reply, quit, err := cb.HandleInput(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(cb.out, "Error: %v\n", err)
			cb.logger.Error("command error", "error", err)
			continue
		}
		if quit {
			break
		}
		if reply.Text == "" {
			continue
		}

		fmt.Fprintf(cb.out, "Bot: %s\n\n", reply.Text)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	fmt.Fprintln(cb.out, "Goodbye!")
	return nil
}
