package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultMoodClassifierURL = "https://moodclassifier.eastasia.inference.ml.azure.com/score"
	defaultTimezone          = "Asia/Jakarta"
)

type Settings struct {
	Port        string
	DatabaseDSN string
	Production  bool

	JWTTTL time.Duration

	Location *time.Location

	QuizTotalQuestions int
	QuizAttemptTTL     time.Duration

	LLMProvider           string
	AzureOpenAIKey        string
	AzureOpenAIEndpoint   string
	AzureOpenAIAPIVersion string
	AzureOpenAIDeployment string
	OpenAIKey             string
	OpenAIModel           string
	GeminiKey             string
	GeminiModel           string

	MoodClassifierURL string
	MoodClassifierKey string

	RedisAddr      string
	TrialRateLimit int

	CORSAllowedOrigins []string
}

var ErrMissingDatabaseDSN = errors.New("DATABASE_DSN is required")

// Load reads Settings from the environment. Only the database DSN is
// mandatory here; secrets are checked by the packages that own them.
func Load() (*Settings, error) {
	s := &Settings{
		Port:        envString("PORT", "1515"),
		DatabaseDSN: envString("DATABASE_DSN", ""),
		Production:  envBool("PRODUCTION", false),

		JWTTTL: time.Duration(envInt("JWT_TTL_MINUTES", 1440)) * time.Minute,

		QuizAttemptTTL: time.Duration(envInt("QUIZ_ATTEMPT_TTL_MINUTES", 30)) * time.Minute,

		LLMProvider:           strings.ToLower(envString("LLM_PROVIDER", "azure")),
		AzureOpenAIKey:        envString("AZURE_OPENAI_API_KEY", ""),
		AzureOpenAIEndpoint:   envString("AZURE_OPENAI_ENDPOINT", ""),
		AzureOpenAIAPIVersion: envString("AZURE_OPENAI_API_VERSION", "2024-10-21"),
		AzureOpenAIDeployment: envString("AZURE_OPENAI_DEPLOYMENT", "gpt-4.1"),
		OpenAIKey:             envString("OPENAI_API_KEY", ""),
		OpenAIModel:           envString("OPENAI_MODEL", "gpt-4.1"),
		GeminiKey:             envString("GEMINI_API_KEY", ""),
		GeminiModel:           envString("GEMINI_MODEL", "gemini-2.0-flash"),

		MoodClassifierURL: envString("MOOD_CLASSIFIER_URL", defaultMoodClassifierURL),
		MoodClassifierKey: envString("MOOD_CLASSIFIER_API_KEY", ""),

		RedisAddr:      envString("REDIS_ADDR", ""),
		TrialRateLimit: envInt("TRIAL_RATE_LIMIT", 10),

		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	s.QuizTotalQuestions = 2
	if s.Production {
		s.QuizTotalQuestions = 5
	}
	s.QuizTotalQuestions = envInt("QUIZ_TOTAL_QUESTIONS", s.QuizTotalQuestions)

	loc, err := time.LoadLocation(envString("APP_TIMEZONE", defaultTimezone))
	if err != nil {
		loc = time.FixedZone("WIB", 7*60*60)
	}
	s.Location = loc

	if s.DatabaseDSN == "" {
		return s, ErrMissingDatabaseDSN
	}
	return s, nil
}

func envString(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func envInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func envBool(name string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envList(name string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
