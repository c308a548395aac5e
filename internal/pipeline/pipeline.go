// Package pipeline implements the fixed-shape orchestrator: refine →
// retrieve → (trivial? skip : scout) → generate (spec §5). It is built
// as a table of transition functions over an immutable state record
// rather than a node-object hierarchy, per spec §7's design note, and
// instruments each node with the same otel span + prometheus counter
// pattern the teacher's EscalatingRouter uses
// (services/trace/agent/routing/escalating_router.go).
package pipeline

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shellmaster/sm/internal/complexity"
	"github.com/shellmaster/sm/internal/entity"
	"github.com/shellmaster/sm/internal/executor"
	"github.com/shellmaster/sm/internal/facts"
	"github.com/shellmaster/sm/internal/knowledge"
	"github.com/shellmaster/sm/internal/llmclient"
	"github.com/shellmaster/sm/internal/planner"
	"github.com/shellmaster/sm/internal/state"
	"github.com/shellmaster/sm/internal/trivia"
)

var pipelineTracer = otel.Tracer("shellmaster.pipeline")

var nodeLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "shellmaster",
	Subsystem: "pipeline",
	Name:      "node_latency_seconds",
	Help:      "Latency of each pipeline node",
	Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 3, 10, 30},
}, []string{"node"})

var nodeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "shellmaster",
	Subsystem: "pipeline",
	Name:      "node_errors_total",
	Help:      "Errors encountered by pipeline node",
}, []string{"node"})

// ExamplesK is how many knowledge-base examples the retrieve node asks for.
const ExamplesK = 3

// Pipeline wires together every node's collaborators. LLM must be
// non-nil; Store may be nil, in which case retrieve degrades to "No
// examples found." (spec §6).
type Pipeline struct {
	LLM   llmclient.Client
	Store *knowledge.Store
}

// Run executes the full refine → retrieve → (scout?) → generate chain
// for query and returns the final state. The root pipeline.run span
// carries a request_id attribute and every node's span is its child,
// letting a trace backend group one query's nodes together (spec §7).
func (p *Pipeline) Run(ctx context.Context, query string) state.State {
	requestID := uuid.NewString()
	ctx, span := pipelineTracer.Start(ctx, "pipeline.run", trace.WithAttributes(attribute.String("request_id", requestID)))
	defer span.End()

	st := state.State{Query: query}

	st.Apply(p.refine(ctx, st))
	st.Apply(p.retrieve(ctx, st))

	if st.Complexity != state.Trivial {
		st.Apply(p.scout(ctx, st))
	}

	st.Apply(p.generate(ctx, st))
	return st
}

// runNode wraps a transition function with a span, a latency
// observation, and a log entry, matching the escalating router's
// instrumentation shape.
func runNode(ctx context.Context, name string, fn func(context.Context) state.Patch) state.Patch {
	ctx, span := pipelineTracer.Start(ctx, "pipeline."+name)
	defer span.End()

	start := time.Now()
	patch := fn(ctx)
	nodeLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if patch.Error != nil && *patch.Error != "" {
		nodeErrors.WithLabelValues(name).Inc()
		span.SetStatus(codes.Error, *patch.Error)
	}
	span.SetAttributes(attribute.String("node", name))

	log := state.NewLog(name, "completed")
	patch.Log = &log
	return patch
}

// refine populates intent, complexity, and — on the trivial fast-path —
// command (spec §5).
func (p *Pipeline) refine(ctx context.Context, st state.State) state.Patch {
	return runNode(ctx, "refine", func(ctx context.Context) state.Patch {
		if cmd, ok := trivia.Lookup(st.Query); ok {
			intent := state.Intent{
				Domains:    state.NormalizeDomains(nil),
				Action:     "trivial",
				Complexity: state.Trivial,
			}
			cmdStr := string(cmd)
			return state.Patch{Intent: &intent, Complexity: complexityPtr(state.Trivial), Command: &cmdStr}
		}

		entities := entity.Extract(st.Query)
		intent, err := p.classifyIntent(ctx, st.Query, entities)
		heuristic := complexity.Classify(st.Query, intent)
		final := state.Max(intent.Complexity, heuristic)
		intent.Complexity = final

		patch := state.Patch{Intent: &intent, Complexity: &final}
		if err != nil {
			msg := err.Error()
			patch.Error = &msg
		}
		return patch
	})
}

// classifyIntent asks the LLM for the Intent JSON, repairs and parses
// it, and falls back to domain defaults on any terminal failure (spec
// §6: "intent path uses defaults").
func (p *Pipeline) classifyIntent(ctx context.Context, query string, entities state.Entities) (state.Intent, error) {
	text, _, err := p.LLM.Invoke(ctx, llmclient.IntentPrompt, map[string]string{"Query": query})
	if err != nil {
		return defaultIntent(entities, err.Error()), err
	}

	intent, parseErr := parseIntentJSON(text)
	if parseErr != "" {
		intent = defaultIntent(entities, parseErr)
	} else {
		intent.Entities.Merge(entities)
		intent.Entities.CrossPromote()
		intent.Domains = state.NormalizeDomains(intent.Domains)
	}
	return intent, nil
}

func defaultIntent(entities state.Entities, parseErr string) state.Intent {
	return state.Intent{
		Domains:    state.NormalizeDomains(nil),
		Action:     "unknown",
		Entities:   entities,
		Complexity: state.Moderate,
		ParseError: parseErr,
	}
}

// retrieve fetches similar past examples from the knowledge store (spec
// §5, §6). It never fails the pipeline: any error degrades to the
// store's own "No examples found." text.
func (p *Pipeline) retrieve(ctx context.Context, st state.State) state.Patch {
	return runNode(ctx, "retrieve", func(ctx context.Context) state.Patch {
		examples := knowledge.Search(ctx, p.Store, st.Query, ExamplesK)
		return state.Patch{Examples: &examples}
	})
}

// scout plans and executes reconnaissance probes, then distills their
// output into the facts context string (spec §4, §5).
func (p *Pipeline) scout(ctx context.Context, st state.State) state.Patch {
	return runNode(ctx, "scout", func(ctx context.Context) state.Patch {
		probes := planner.Plan(st.Intent.Domains, st.Intent.Entities, st.Query, st.Complexity)
		results := executor.Execute(ctx, probes)
		factStr := facts.Extract(results, executor.FailureFraction(results))

		info := summarizeScout(results)
		return state.Patch{Context: &factStr, ScoutInfo: &info}
	})
}

func summarizeScout(results []state.ProbeResult) string {
	ok, failed := 0, 0
	for _, r := range results {
		if r.RC == 0 {
			ok++
		} else {
			failed++
		}
	}
	return strconv.Itoa(ok) + " ok, " + strconv.Itoa(failed) + " failed, " + strconv.Itoa(len(results)) + " total"
}

// generate invokes the LLM with the final prompt template, unless
// command is already set by the trivial fast-path (spec §5).
func (p *Pipeline) generate(ctx context.Context, st state.State) state.Patch {
	return runNode(ctx, "generate", func(ctx context.Context) state.Patch {
		if st.Command != "" {
			return state.Patch{}
		}

		text, _, err := p.LLM.Invoke(ctx, llmclient.GeneratePrompt, map[string]string{
			"Query":    st.Query,
			"Facts":    st.Context,
			"Examples": st.Examples,
		})
		if err != nil {
			// spec §6: "generate path emits a canned echo carrying the
			// error text" rather than failing the whole run.
			cmd := "echo " + planner.ShellQuote("shellmaster: generation failed: "+err.Error())
			msg := err.Error()
			return state.Patch{Command: &cmd, Error: &msg}
		}

		cmd := cleanCommand(text)
		return state.Patch{Command: &cmd}
	})
}

// cleanCommand strips fenced-code wrappers and keeps the first
// non-comment line (spec §5's generate node contract).
func cleanCommand(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```bash")
	text = strings.TrimPrefix(text, "```sh")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.TrimPrefix(line, "$ ")
	}
	return ""
}

func complexityPtr(c state.Complexity) *state.Complexity { return &c }
