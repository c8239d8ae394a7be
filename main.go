package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/google/uuid"

	"github.com/dskvich/chatgpt-backend-probe/pkg/backend"
	"github.com/dskvich/chatgpt-backend-probe/pkg/conversation"
	"github.com/dskvich/chatgpt-backend-probe/pkg/domain"
	"github.com/dskvich/chatgpt-backend-probe/pkg/eventstream"
	"github.com/dskvich/chatgpt-backend-probe/pkg/logger"
	"github.com/dskvich/chatgpt-backend-probe/pkg/transport"
)

type Config struct {
	AccessToken     string        `env:"CHATGPT_ACCESS_TOKEN,required,notEmpty,unset"`
	EndpointURL     string        `env:"CHATGPT_ENDPOINT_URL" envDefault:"https://chat.openai.com/backend-api/conversation"`
	Method          string        `env:"CHATGPT_METHOD" envDefault:"GET"`
	Model           string        `env:"CHATGPT_MODEL" envDefault:"text-davinci-002-render-sha"`
	UserAgent       string        `env:"CHATGPT_USER_AGENT"`
	Origin          string        `env:"CHATGPT_ORIGIN"`
	Referer         string        `env:"CHATGPT_REFERER"`
	AssistantAppID  string        `env:"CHATGPT_ASSISTANT_APP_ID"`
	Prompt          string        `env:"PROBE_PROMPT" envDefault:"hello"`
	ConversationID  string        `env:"PROBE_CONVERSATION_ID"`
	ParentMessageID string        `env:"PROBE_PARENT_MESSAGE_ID"`
	Timeout         time.Duration `env:"PROBE_TIMEOUT" envDefault:"60s"`
	DecodeStream    bool          `env:"PROBE_DECODE_STREAM"`
	Debug           bool          `env:"LOG_DEBUG"`
	NoColor         bool          `env:"LOG_NO_COLOR"`
}

func main() {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))
		slog.Error("parsing env config", logger.Err(err))
		os.Exit(1)
	}

	opts := *logger.DefaultOptions
	opts.NoColor = cfg.NoColor
	if cfg.Debug {
		opts.Level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, &opts)))

	if err := runMain(cfg, transport.NewClient(), os.Stdout); err != nil {
		slog.Error("probe failed", logger.Err(err))
		os.Exit(1)
	}
}

func runMain(cfg Config, hc transport.Doer, out io.Writer) error {
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case s := <-sigCh:
			slog.Info("cancelling due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return probe(logger.ContextWithRequestID(ctx, uuid.NewString()[:8]), cfg, hc, out)
}

func probe(ctx context.Context, cfg Config, hc transport.Doer, out io.Writer) error {
	client, err := backend.NewClient(cfg.EndpointURL, hc,
		backend.WithMethod(cfg.Method),
		backend.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}

	req := conversation.NewRequest(
		[]domain.Message{conversation.NewUserMessage(cfg.Prompt)},
		conversation.WithModel(cfg.Model),
		conversation.WithConversationID(cfg.ConversationID),
		conversation.WithParentMessageID(cfg.ParentMessageID),
	)

	creds := domain.Credentials{
		AccessToken:    cfg.AccessToken,
		UserAgent:      cfg.UserAgent,
		Origin:         cfg.Origin,
		Referer:        cfg.Referer,
		AssistantAppID: cfg.AssistantAppID,
	}

	slog.InfoContext(ctx, "Sending probe", "url", cfg.EndpointURL, "method", cfg.Method, "model", req.Model)

	resp, err := client.Send(ctx, req, creds)
	if err != nil {
		return fmt.Errorf("sending conversation request: %w", err)
	}

	slog.InfoContext(ctx, "Probe answered", "status", resp.StatusCode, "bytes", len(resp.Body))

	if _, err := fmt.Fprintf(out, "status: %d\n%s\n", resp.StatusCode, resp.Body); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}

	if !cfg.DecodeStream {
		return nil
	}

	reply, err := eventstream.Final(resp.Body)
	if err != nil {
		slog.WarnContext(ctx, "Decoding event stream", logger.Err(err))
		return nil
	}
	if _, err := fmt.Fprintf(out, "conversation_id: %s\nmessage_id: %s\nreply: %s\n",
		reply.ConversationID, reply.MessageID, reply.Text); err != nil {
		return fmt.Errorf("writing reply: %w", err)
	}
	return nil
}
