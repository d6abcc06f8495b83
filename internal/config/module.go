package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

const envPrefix = "APP"

type Config struct {
	Server       ServerConfig       `mapstructure:"server" yaml:"server"`
	GRPC         GRPCConfig         `mapstructure:"grpc" yaml:"grpc"`
	Logging      LoggingConfig      `mapstructure:"logging" yaml:"logging"`
	Telemetry    TelemetryConfig    `mapstructure:"telemetry" yaml:"telemetry"`
	Workflow     WorkflowConfig     `mapstructure:"workflow" yaml:"workflow"`
	Jira         JiraConfig         `mapstructure:"jira" yaml:"jira"`
	Github       GithubConfig       `mapstructure:"github" yaml:"github"`
	Jenkins      JenkinsConfig      `mapstructure:"jenkins" yaml:"jenkins"`
	Notification NotificationConfig `mapstructure:"notification" yaml:"notification"`
}

type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

type GRPCConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Host    string `mapstructure:"host" yaml:"host"`
	Port    int    `mapstructure:"port" yaml:"port"`
}

type LoggingConfig struct {
	Level         string `mapstructure:"level" yaml:"level"`
	Development   bool   `mapstructure:"development" yaml:"development"`
	ForwardURL    string `mapstructure:"forward_url" yaml:"forward_url"`
	ForwardAPIKey string `mapstructure:"forward_api_key" yaml:"forward_api_key"`
}

type TelemetryConfig struct {
	ServiceName  string `mapstructure:"service_name" yaml:"service_name"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
	Environment  string `mapstructure:"environment" yaml:"environment"`
}

type WorkflowConfig struct {
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	RepositoryWait WaitConfig    `mapstructure:"repository_wait" yaml:"repository_wait"`
	ThreadWait     WaitConfig    `mapstructure:"thread_wait" yaml:"thread_wait"`
}

// WaitConfig bounds a readiness wait: a fixed initial delay, then polling with
// exponential backoff between Interval and MaxInterval until Timeout.
type WaitConfig struct {
	InitialDelay time.Duration `mapstructure:"initial_delay" yaml:"initial_delay"`
	Interval     time.Duration `mapstructure:"interval" yaml:"interval"`
	MaxInterval  time.Duration `mapstructure:"max_interval" yaml:"max_interval"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type JiraConfig struct {
	BaseURL    string        `mapstructure:"base_url" yaml:"base_url"`
	Username   string        `mapstructure:"username" yaml:"username"`
	Token      string        `mapstructure:"token" yaml:"token"`
	ProjectKey string        `mapstructure:"project_key" yaml:"project_key"`
	IssueType  string        `mapstructure:"issue_type" yaml:"issue_type"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type GithubConfig struct {
	BaseURL            string        `mapstructure:"base_url" yaml:"base_url"`
	Token              string        `mapstructure:"token" yaml:"token"`
	TemplateOwner      string        `mapstructure:"template_owner" yaml:"template_owner"`
	TemplateRepository string        `mapstructure:"template_repository" yaml:"template_repository"`
	GeneratedOwner     string        `mapstructure:"generated_owner" yaml:"generated_owner"`
	TestPath           string        `mapstructure:"test_path" yaml:"test_path"`
	ClassTemplatePath  string        `mapstructure:"class_template_path" yaml:"class_template_path"`
	StepTemplatePath   string        `mapstructure:"step_template_path" yaml:"step_template_path"`
	Timeout            time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type JenkinsConfig struct {
	BaseURL  string        `mapstructure:"base_url" yaml:"base_url"`
	Username string        `mapstructure:"username" yaml:"username"`
	Token    string        `mapstructure:"token" yaml:"token"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type NotificationConfig struct {
	Provider string         `mapstructure:"provider" yaml:"provider"`
	Telegram TelegramConfig `mapstructure:"telegram" yaml:"telegram"`
	Slack    SlackConfig    `mapstructure:"slack" yaml:"slack"`
}

type TelegramConfig struct {
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url"`
	Token       string        `mapstructure:"token" yaml:"token"`
	ChannelID   string        `mapstructure:"channel_id" yaml:"channel_id"`
	ChannelName string        `mapstructure:"channel_name" yaml:"channel_name"`
	ChatID      int64         `mapstructure:"chat_id" yaml:"chat_id"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type SlackConfig struct {
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url"`
	Token     string        `mapstructure:"token" yaml:"token"`
	ChannelID string        `mapstructure:"channel_id" yaml:"channel_id"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

const (
	ProviderTelegram = "telegram"
	ProviderSlack    = "slack"
)

func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		GRPC: GRPCConfig{
			Enabled: true,
			Host:    "0.0.0.0",
			Port:    9080,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "autotests-backend",
		},
		Workflow: WorkflowConfig{
			Timeout: 5 * time.Minute,
			RepositoryWait: WaitConfig{
				InitialDelay: 2 * time.Second,
				Interval:     500 * time.Millisecond,
				MaxInterval:  5 * time.Second,
				Timeout:      30 * time.Second,
			},
			ThreadWait: WaitConfig{
				InitialDelay: 5 * time.Second,
				Interval:     time.Second,
				MaxInterval:  5 * time.Second,
				Timeout:      30 * time.Second,
			},
		},
		Jira: JiraConfig{
			BaseURL:    "https://jira.autotests.cloud",
			ProjectKey: "AUTO",
			IssueType:  "Task",
			Timeout:    10 * time.Second,
		},
		Github: GithubConfig{
			BaseURL:            "https://api.github.com/",
			TemplateOwner:      "autotests-cloud",
			TemplateRepository: "java-template",
			GeneratedOwner:     "autotests-cloud",
			TestPath:           "src/test/java/cloud/autotests/tests/AppTests.java",
			Timeout:            30 * time.Second,
		},
		Jenkins: JenkinsConfig{
			BaseURL: "https://jenkins.autotests.cloud",
			Timeout: 10 * time.Second,
		},
		Notification: NotificationConfig{
			Provider: ProviderTelegram,
			Telegram: TelegramConfig{
				BaseURL: "https://api.telegram.org",
				Timeout: 10 * time.Second,
			},
			Slack: SlackConfig{
				BaseURL: "https://slack.com/api/",
				Timeout: 10 * time.Second,
			},
		},
	}
}

// Loader reads configuration from a yaml file layered over Default, with
// APP_* environment variables taking precedence (APP_JIRA_TOKEN overrides
// jira.token).
type Loader struct {
	v *viper.Viper
}

func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())
	return &Loader{v: v}
}

func (l *Loader) Load(path string) (Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !isNotExist(err) {
				return Config{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Load(path string) (Config, error) {
	return NewLoader().Load(path)
}

func (c Config) Validate() error {
	switch c.Notification.Provider {
	case ProviderTelegram, ProviderSlack:
	default:
		return fmt.Errorf("unknown notification provider %q", c.Notification.Provider)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Workflow.Timeout <= 0 {
		return errors.New("workflow timeout must be positive")
	}
	switch c.Notification.Provider {
	case ProviderTelegram:
		if c.Notification.Telegram.ChannelID == "" {
			return errors.New("notification.telegram.channel_id is required")
		}
		if c.Notification.Telegram.ChatID == 0 {
			return errors.New("notification.telegram.chat_id is required")
		}
	case ProviderSlack:
		if c.Notification.Slack.ChannelID == "" {
			return errors.New("notification.slack.channel_id is required")
		}
	}
	return nil
}

// Redacted returns a copy with every credential blanked.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "********"
	}
	c.Logging.ForwardAPIKey = mask(c.Logging.ForwardAPIKey)
	c.Jira.Token = mask(c.Jira.Token)
	c.Github.Token = mask(c.Github.Token)
	c.Jenkins.Token = mask(c.Jenkins.Token)
	c.Notification.Telegram.Token = mask(c.Notification.Telegram.Token)
	c.Notification.Slack.Token = mask(c.Notification.Slack.Token)
	return c
}

func Module(path string) fx.Option {
	return fx.Provide(func() (Config, error) {
		return Load(path)
	})
}
