package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fitness-ai-assistant/calculator"
	"fitness-ai-assistant/chatlog"
	"fitness-ai-assistant/commands"
	"fitness-ai-assistant/conversation"
	"fitness-ai-assistant/logging"
	"fitness-ai-assistant/metrics"
	"fitness-ai-assistant/models"
	"fitness-ai-assistant/profile"
	"fitness-ai-assistant/tables"
)

// Fixed replies
const (
	FallbackApology = "I'm having trouble reaching the assistant right now, please try again later."
	CommandApology  = "Sorry, something went wrong while working that out. Please check the numbers and try again."
	ProfileApology  = "Sorry, I couldn't access your profile right now. Please try again."
)

// fallbackKind labels unmatched messages in dispatch metrics
const fallbackKind = "fallback"

// ChatService routes a message to a calculator command or the fallback
// generator. It holds no per-conversation state and is safe for concurrent use.
type ChatService struct {
	tables    *tables.Tables
	grammar   *commands.Grammar
	generator Generator
	recorder  chatlog.Recorder
	profiles  profile.Store
	metrics   *metrics.Metrics
	timeout   time.Duration
	log       *zap.SugaredLogger
}

// Option configures a ChatService
type Option func(*ChatService)

// WithRecorder sets where exchanges are logged
func WithRecorder(r chatlog.Recorder) Option {
	return func(s *ChatService) { s.recorder = r }
}

// WithProfileStore sets the profile store used by profile commands and prompts
func WithProfileStore(p profile.Store) Option {
	return func(s *ChatService) { s.profiles = p }
}

// WithMetrics sets the metrics sink
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *ChatService) { s.metrics = m }
}

// WithTimeout bounds each fallback call
func WithTimeout(d time.Duration) Option {
	return func(s *ChatService) { s.timeout = d }
}

// NewChatService builds the grammar from t and wires the collaborators
func NewChatService(t *tables.Tables, generator Generator, opts ...Option) *ChatService {
	s := &ChatService{
		tables:    t,
		grammar:   commands.NewGrammar(t),
		generator: generator,
		recorder:  chatlog.Discard{},
		timeout:   30 * time.Second,
		log:       logging.With("component", "chat"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generator returns the fallback provider
func (s *ChatService) Generator() Generator {
	return s.generator
}

// Respond answers message given the prior conversation. The returned history
// is prior plus the user message and the reply; prior itself is never modified.
func (s *ChatService) Respond(ctx context.Context, message string, prior []models.ChatMessage) (string, []models.ChatMessage) {
	history := conversation.New(prior)
	history.AppendUser(message)

	var reply string
	if m := s.grammar.Match(message); m.Matched() {
		s.metrics.RecordDispatch(string(m.Kind))
		reply = s.runCommand(ctx, m)
	} else {
		s.metrics.RecordDispatch(fallbackKind)
		reply = s.fallback(ctx, history.Messages())
	}

	history.AppendAssistant(reply)
	s.record(ctx, message, reply)

	return reply, history.Messages()
}

// record logs the exchange. Failures, panics included, never reach the caller.
func (s *ChatService) record(ctx context.Context, message, reply string) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.RecordRecorderFailure()
			s.log.Errorw("Recorder panicked", "panic", r)
		}
	}()

	if err := s.recorder.Record(ctx, message, reply); err != nil {
		s.metrics.RecordRecorderFailure()
		s.log.Warnf("Failed to record conversation: %v", err)
	}
}

// runCommand executes exactly one handler and formats its result
func (s *ChatService) runCommand(ctx context.Context, m commands.Match) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("Command handler panicked", "kind", m.Kind, "panic", r)
			reply = CommandApology
		}
	}()

	a := m.Args
	t := s.tables

	switch m.Kind {
	case commands.KindBMI:
		return formatCommandResult(m, calculator.BMI(a.Weight, a.Height))
	case commands.KindCalories:
		return formatCommandResult(m, calculator.DailyCalories(t, a.Weight, a.Height, a.Age, a.Gender, a.Activity))
	case commands.KindMealCalories:
		return formatCommandResult(m, calculator.MealCalories(t, a.Items))
	case commands.KindWorkoutPlan:
		return formatCommandResult(m, calculator.WorkoutPlan(t, a.Goal, a.Experience))
	case commands.KindWorkoutDuration:
		return formatCommandResult(m, calculator.WorkoutDuration(a.Sets, a.Reps, a.Rest))
	case commands.KindBodyFat:
		return formatCommandResult(m, calculator.BodyFat(a.Weight, a.Height, a.Age, a.Gender))
	case commands.KindIdealWeight:
		return formatCommandResult(m, calculator.IdealWeight(a.Height, a.Gender))
	case commands.KindProtein:
		return formatCommandResult(m, calculator.ProteinNeeds(t, a.Weight, a.Activity))
	case commands.KindWater:
		return formatCommandResult(m, calculator.WaterIntake(t, a.Weight, a.Activity))
	case commands.KindHeartRate:
		return formatCommandResult(m, calculator.HeartRateZones(a.Age))
	case commands.KindMacros:
		return formatCommandResult(m, calculator.Macros(t, a.Calories, a.Goal))
	case commands.KindMealPlan:
		return s.mealPlan(a.Name)
	case commands.KindProfileShow, commands.KindProfileReset, commands.KindProfileSet:
		return s.profileCommand(ctx, m)
	}

	panic(fmt.Sprintf("no handler for command %q", m.Kind))
}

func (s *ChatService) mealPlan(name string) string {
	if name == "" {
		return formatMealPlanList(s.tables.MealPlans)
	}
	meal, ok := calculator.MealPlan(s.tables, name)
	if !ok {
		return fmt.Sprintf("I don't have a meal plan called %s. Try: %s.", name, strings.Join(s.tables.MealPlanNames(), ", "))
	}
	return fmt.Sprintf("Meal plan (%s): %s", strings.ReplaceAll(name, "_", " "), meal)
}

func (s *ChatService) profileCommand(ctx context.Context, m commands.Match) string {
	if s.profiles == nil {
		return ProfileApology
	}

	var err error
	switch m.Kind {
	case commands.KindProfileReset:
		if err = s.profiles.Reset(ctx); err == nil {
			return "Your profile has been cleared. Missing fields: " + strings.Join(models.ProfileFields, ", ") + "."
		}
	case commands.KindProfileSet:
		err = s.profiles.Update(ctx, map[string]string{m.Args.Field: m.Args.Value})
	}
	if err != nil {
		s.log.Warnf("Profile %s failed: %v", m.Kind, err)
		return ProfileApology
	}

	p, err := s.profiles.Get(ctx)
	if err != nil {
		s.log.Warnf("Failed to load profile: %v", err)
		return ProfileApology
	}
	return formatProfile(m, p, profile.MissingFields(p))
}

// fallback asks the generator exactly once. Any error or panic becomes the apology.
func (s *ChatService) fallback(ctx context.Context, history []models.ChatMessage) (reply string) {
	if s.generator == nil {
		return FallbackApology
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.metrics.RecordFallback(s.generator.Name(), "error", time.Since(start))
			s.log.Errorw("Fallback panicked", "provider", s.generator.Name(), "panic", r)
			reply = FallbackApology
		}
	}()

	var snapshot models.Profile
	if s.profiles != nil {
		p, err := s.profiles.Get(ctx)
		if err != nil {
			s.log.Warnf("Failed to load profile for prompt: %v", err)
		}
		snapshot = p
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start = time.Now()
	reply, err := s.generator.Generate(ctx, Prompt{System: systemPrompt, Profile: snapshot, History: history})
	if err == nil && strings.TrimSpace(reply) == "" {
		err = fmt.Errorf("empty reply")
	}
	if err != nil {
		s.metrics.RecordFallback(s.generator.Name(), "error", time.Since(start))
		s.log.Errorw("Fallback failed", "provider", s.generator.Name(), "error", err)
		return FallbackApology
	}

	s.metrics.RecordFallback(s.generator.Name(), "ok", time.Since(start))
	logging.LogDuration(s.log, "fallback", start)
	return reply
}
