package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/SeagCha/Nelegal/internal/logutil"
	"github.com/SeagCha/Nelegal/internal/statepaths"
	"github.com/SeagCha/Nelegal/internal/telegram"
	"github.com/SeagCha/Nelegal/providers/openai"
	"github.com/SeagCha/Nelegal/session"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type botJob struct {
	CorrelationID string
	ChatID        int64
	Event         session.Event
}

type userWorker struct {
	Jobs chan botJob
}

func newBotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := strings.TrimSpace(viper.GetString("telegram.bot_token"))
			if token == "" {
				return fmt.Errorf("missing telegram.bot_token (set via config or NELEGAL_TELEGRAM_BOT_TOKEN)")
			}
			apiKey := strings.TrimSpace(viper.GetString("llm.api_key"))
			if apiKey == "" {
				return fmt.Errorf("missing llm.api_key (set via config or NELEGAL_LLM_API_KEY)")
			}

			logger, err := logutil.LoggerFromViper()
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			store, err := session.Open(statepaths.SessionsPath())
			if err != nil {
				return err
			}

			assistant := session.Assistant{
				Client:      openai.New(viper.GetString("llm.endpoint"), apiKey),
				Model:       viper.GetString("llm.model"),
				Temperature: viper.GetFloat64("llm.temperature"),
				Timeout:     viper.GetDuration("llm.request_timeout"),
			}
			router, err := session.NewRouter(session.RouterOptions{
				Store:             store,
				Summarizer:        assistant,
				Conversationalist: assistant,
				Window:            viper.GetDuration("aggregate.window"),
				HistoryMax:        viper.GetInt("chat.history_max_messages"),
				Logger:            logger,
			})
			if err != nil {
				return err
			}

			pollTimeout := viper.GetDuration("telegram.poll_timeout")
			if pollTimeout <= 0 {
				pollTimeout = 30 * time.Second
			}
			taskTimeout := viper.GetDuration("bot.task_timeout")
			if taskTimeout <= 0 {
				taskTimeout = 2 * time.Minute
			}
			maxConc := viper.GetInt("bot.max_concurrency")
			if maxConc <= 0 {
				maxConc = 3
			}
			sem := make(chan struct{}, maxConc)

			httpClient := &http.Client{Timeout: 60 * time.Second}
			api := telegram.NewAPI(httpClient, viper.GetString("telegram.base_url"), token)

			me, err := api.GetMe(context.Background())
			if err != nil {
				return err
			}

			logger.Info("bot_start",
				"bot_username", me.Username,
				"bot_id", me.ID,
				"poll_timeout", pollTimeout.String(),
				"task_timeout", taskTimeout.String(),
				"max_concurrency", maxConc,
				"sessions_path", statepaths.SessionsPath(),
			)

			var (
				mu      sync.Mutex
				workers = make(map[int64]*userWorker)
			)

			// One worker per user keeps per-user ordering: the aggregation
			// window is timestamp-sensitive, so a user's events must be
			// applied in arrival order. Different users proceed concurrently
			// up to the global limit.
			getOrStartWorker := func(userID int64) *userWorker {
				mu.Lock()
				defer mu.Unlock()
				if w, ok := workers[userID]; ok && w != nil {
					return w
				}
				w := &userWorker{Jobs: make(chan botJob, 16)}
				workers[userID] = w

				go func() {
					for job := range w.Jobs {
						sem <- struct{}{}
						func() {
							defer func() { <-sem }()

							ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
							replies := router.Handle(ctx, job.Event)
							cancel()

							for _, reply := range replies {
								markup := telegram.MarkupFor(reply.Keyboard)
								if err := api.SendMessage(context.Background(), job.ChatID, reply.Text, markup); err != nil {
									logger.Warn("telegram_send_error",
										"correlation_id", job.CorrelationID,
										"chat_id", job.ChatID,
										"error", err.Error(),
									)
								}
							}
						}()
					}
				}()

				return w
			}

			var offset int64
			for {
				updates, nextOffset, err := api.GetUpdates(context.Background(), offset, pollTimeout)
				if err != nil {
					logger.Warn("telegram_get_updates_error", "error", err.Error())
					time.Sleep(1 * time.Second)
					continue
				}
				offset = nextOffset

				for _, u := range updates {
					msg := u.Message
					if msg == nil || msg.Chat == nil || msg.From == nil || msg.From.IsBot {
						continue
					}
					userID := msg.From.ID
					chatID := msg.Chat.ID

					// The session is owned by its user's worker, so even the
					// /start greeting goes through the queue: handling it here
					// would touch the session concurrently and jump the line
					// ahead of already queued events.
					var ev session.Event
					if isStartCommand(msg.Text) {
						ev = session.Event{
							UserID:      userID,
							ChatID:      chatID,
							Start:       true,
							DisplayName: firstNameOrFallback(msg.From),
							At:          time.Now(),
						}
					} else {
						frag, supported := telegram.FragmentFromMessage(msg)
						ev = session.Event{
							UserID:    userID,
							ChatID:    chatID,
							Fragment:  frag,
							Supported: supported,
							At:        time.Now(),
						}
					}
					job := botJob{
						CorrelationID: "evt_" + uuid.NewString(),
						ChatID:        chatID,
						Event:         ev,
					}
					logger.Debug("event_received",
						"correlation_id", job.CorrelationID,
						"user_id", userID,
						"chat_id", chatID,
						"start", ev.Start,
						"supported", ev.Supported,
						"forwarded", ev.Fragment.Forwarded,
					)
					getOrStartWorker(userID).Jobs <- job
				}
			}
		},
	}

	return cmd
}

func isStartCommand(text string) bool {
	text = strings.TrimSpace(text)
	return text == "/start" || strings.HasPrefix(text, "/start ")
}

func firstNameOrFallback(u *telegram.User) string {
	if u != nil && strings.TrimSpace(u.FirstName) != "" {
		return strings.TrimSpace(u.FirstName)
	}
	return "there"
}
