package agent

import (
	"context"
	"fmt"

	"github.com/xiruizhao/cashflow-forecast"
	"github.com/xiruizhao/cashflow-forecast/docs"
	"github.com/xiruizhao/cashflow-forecast/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator builds the expert that fronts the session. Its tools are
// the other experts themselves, so it can route sub-questions to whoever
// holds the skill.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You facilitate the conversation and own the user's request end to end.

			The user wants to understand their future cash flows: upcoming balances,
			what a recurrence rule means, or how an entry affects their accounts.

			Your tools are experts. Each keeps the context of your earlier questions,
			so split the request into sub-questions, route each to the expert whose
			description fits, and assemble their answers into one response.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewPlanner creates the expert in charge of the user's cash-flow series.
// It reads the series through the given loader so it always sees the same
// file the other subcommands use.
func NewPlanner(loadSeries func() (*cashflow.Series, error)) *Expert {
	lib := []Function{
		listEntriesFunc(loadSeries),
		forecastFunc(loadSeries),
		classifyRuleFunc(),
	}

	return &Expert{
		Name: "Planner",
		Description: `This is the Planner. He is in charge of reading the user's cash-flow series.
		He can list the entries, compute the forecast ledger between two dates, and explain
		what a recurrence rule means.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a planner in charge of the user's cash-flow series.
				You know how to use the Tools to extract relevant information about the user's
				future balances. You are part of a team of experts; yours is everything about
				the user's recurring cash flows. Pardon their approximative language and figure
				out what they meant.

				Use the available tools to get information about the user's cash flows
				  - list of entries
				  - the forecast ledger between two dates
				  - the meaning of a recurrence rule
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// respond packs an output or an error into a function response.
func respond(id, name string, output string, err error) *genai.FunctionResponse {
	fresp := &genai.FunctionResponse{ID: id, Name: name}
	if err != nil {
		fresp.Response = map[string]any{"error": err.Error()}
		return fresp
	}
	fresp.Response = map[string]any{"output": output}
	return fresp
}

func dateSchema(description string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeString,
		Description: description + `
		It uses a flexible date format based on YYYY-MM-DD:

		` + must(docs.GetTopic("dates")),
	}
}

func argDate(args map[string]any, key string, fallback cashflow.Date) (cashflow.Date, error) {
	iv, ok := args[key]
	if !ok {
		return fallback, nil
	}
	sv, ok := iv.(string)
	if !ok {
		return fallback, fmt.Errorf("argument %q is not a string as expected but %T", key, iv)
	}
	d, err := cashflow.ParseDate(sv)
	if err != nil {
		return fallback, fmt.Errorf("argument %q must be a valid date, got %q: %w", key, sv, err)
	}
	return d, nil
}

func listEntriesFunc(loadSeries func() (*cashflow.Series, error)) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "list_entries",
			Description: `list_entries lists all cash-flow entries in the user's series:
			description, per-account deltas, start date and recurrence rule.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of all entries.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := loadSeries()
			if err != nil {
				return respond(id, "list_entries", "", err)
			}
			return respond(id, "list_entries", renderer.EntriesMarkdown(s), nil)
		},
	}
}

func forecastFunc(loadSeries func() (*cashflow.Series, error)) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "forecast",
			Description: `forecast computes the cumulative per-account ledger between two dates:
			one row per date with activity, with the running balance of every account.
			Ticker accounts are kept in share counts.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"start": dateSchema("The start of the window. The series' own start is the default."),
					"end":   dateSchema("The end of the window. Two years from today is the default."),
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted ledger table.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := loadSeries()
			if err != nil {
				return respond(id, "forecast", "", err)
			}
			start, err := argDate(args, "start", s.Start())
			if err != nil {
				return respond(id, "forecast", "", err)
			}
			if start.IsZero() {
				start = cashflow.Today()
			}
			end, err := argDate(args, "end", cashflow.Today().AddYears(2))
			if err != nil {
				return respond(id, "forecast", "", err)
			}
			f, err := s.Forecast(cashflow.NewRange(start, end))
			if err != nil {
				return respond(id, "forecast", "", err)
			}
			return respond(id, "forecast", renderer.ForecastMarkdown(f, renderer.ForecastOptions{}), nil)
		},
	}
}

func classifyRuleFunc() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "classify_rule",
			Description: `classify_rule explains an RFC 5545 recurrence rule string:
			what shape it has and in plain words how often it repeats.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"rule": {
						Type:        genai.TypeString,
						Description: "The recurrence rule string, e.g. \"FREQ=WEEKLY;INTERVAL=2;BYDAY=FR\".",
					},
				},
				Required: []string{"rule"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The rule's kind and a plain-words description.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			rule, ok := args["rule"].(string)
			if !ok {
				return respond(id, "classify_rule", "", fmt.Errorf("argument 'rule' is not a string as expected but %T", args["rule"]))
			}
			_, kind, err := cashflow.Classify(rule)
			if err != nil {
				return respond(id, "classify_rule", "", err)
			}
			out := fmt.Sprintf("kind: %s\nrepeats: %s", kind, renderer.DescribeRule(rule))
			return respond(id, "classify_rule", out, nil)
		},
	}
}
