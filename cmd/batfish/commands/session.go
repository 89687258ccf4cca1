package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/batfish/internal/auth"
	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/fivetwenty-io/batfish/internal/events"
	"github.com/fivetwenty-io/batfish/internal/logging"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/fivetwenty-io/batfish/pkg/batfishclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// session bundles what a command needs to talk to the API.
type session struct {
	client    batfish.Client
	publisher events.Publisher
	logger    *logging.Logger
}

func newLogger(cmd *cobra.Command) *logging.Logger {
	return logging.New(logging.Options{
		Out:     cmd.ErrOrStderr(),
		Verbose: viper.GetBool("verbose"),
		Debug:   viper.GetBool("debug"),
		NoColor: viper.GetBool("no_color"),
	})
}

func tokenStore() (*auth.FileTokenStore, error) {
	if path := viper.GetString("token_file"); path != "" {
		return auth.NewFileTokenStore(path), nil
	}

	store, err := auth.NewHomeTokenStore()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrNoHomeDirectory, err)
	}

	return store, nil
}

// clientConfig assembles a batfish.Config from flags, environment and the
// config file, in viper's precedence order.
func clientConfig(logger batfish.Logger) (*batfish.Config, error) {
	store, err := tokenStore()
	if err != nil {
		return nil, err
	}

	return &batfish.Config{
		APIEndpoint:    viper.GetString("api"),
		AccessToken:    viper.GetString("token"),
		TokenStore:     store,
		UserAgent:      viper.GetString("user_agent"),
		HTTPTimeout:    viper.GetDuration("timeout"),
		ConnectTimeout: viper.GetDuration("connect_timeout"),
		RetryMax:       viper.GetInt("retry_max"),
		RetryWaitMin:   constants.DefaultRetryWaitMin,
		RetryWaitMax:   constants.DefaultRetryWaitMax,
		Debug:          viper.GetBool("debug"),
		Logger:         logger,
	}, nil
}

func newSession(cmd *cobra.Command) (*session, error) {
	logger := newLogger(cmd)

	config, err := clientConfig(logger)
	if err != nil {
		return nil, err
	}

	client, err := batfishclient.New(cmd.Context(), config)
	if err != nil {
		return nil, err
	}

	return &session{
		client:    client,
		publisher: events.New(viper.GetString("nats_url"), viper.GetString("nats_subject"), logger),
		logger:    logger,
	}, nil
}

// Close releases the event publisher.
func (s *session) Close() {
	s.publisher.Close()
}

// publish records a state change. Failures are logged and never fail the
// command.
func (s *session) publish(ctx context.Context, event events.Event) {
	err := s.publisher.Publish(ctx, event)
	if err != nil {
		s.logger.Warn("failed to publish event", map[string]interface{}{
			"event": event.Event,
			"error": err.Error(),
		})
	}
}

// publishAction records a dispatched action.
func (s *session) publishAction(ctx context.Context, resourceType string, resourceID int, action *batfish.Action) {
	if action == nil {
		return
	}

	event := events.NewEvent(action.Type, resourceType, resourceID)
	event.ActionID = action.ID
	s.publish(ctx, event)
}
