package server

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/elektrokombinacija/nexus-checker/internal/answers"
	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/metrics"
	"github.com/elektrokombinacija/nexus-checker/internal/snapshot"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/interact"
)

// StateView is one state as served to hosts.
type StateView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	D         string    `json:"d"`
	Anchor    core.Pt   `json:"anchor"`
	Overlay   bool      `json:"overlay,omitempty"`
	Threshold string    `json:"threshold"`
	Rule      core.Rule `json:"rule"`
}

func (d *Dependencies) stateView(s core.StateShape) StateView {
	rule, _ := d.Map.Rule(s.ID)
	return StateView{
		ID:        s.ID,
		Name:      s.Name,
		D:         s.D,
		Anchor:    d.Hit.LabelAnchor(s),
		Overlay:   s.Overlay,
		Threshold: rule.Threshold(),
		Rule:      rule,
	}
}

// ListStatesHandler returns every drawable state with its rule.
func ListStatesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		shapes := deps.Hit.Shapes()
		out := make([]StateView, 0, len(shapes))
		for _, s := range shapes {
			out = append(out, deps.stateView(s))
		}
		return c.JSON(fiber.Map{
			"width":  deps.Map.Space.W,
			"height": deps.Map.Space.H,
			"states": out,
		})
	}
}

// GetStateHandler returns one state.
func GetStateHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := deps.Map.Shape(c.Params("id"))
		if !ok {
			return errNotFound(c, "state not found")
		}
		return c.JSON(deps.stateView(s))
	}
}

// GetRuleHandler returns the nexus rule for a state id.
func GetRuleHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rule, ok := deps.Map.Rule(c.Params("id"))
		if !ok {
			return errNotFound(c, "rule not found")
		}
		return c.JSON(fiber.Map{
			"rule":      rule,
			"threshold": rule.Threshold(),
			"steps":     rule.Steps(),
		})
	}
}

// number parses a finite float query parameter.
func number(c *fiber.Ctx, key string) (float64, error) {
	v, err := strconv.ParseFloat(c.Query(key), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s is not finite", key)
	}
	return v, nil
}

// viewport builds a fresh viewport from zoom, fx and fy query parameters.
// Out-of-range zoom values are clamped like any other zoom request.
func viewport(c *fiber.Ctx, deps *Dependencies) (*interact.Viewport, error) {
	vp := interact.NewViewport(deps.Map.Space, deps.Levels)
	if c.Query("zoom") == "" {
		return vp, nil
	}
	zoom, err := number(c, "zoom")
	if err != nil {
		return nil, fmt.Errorf("zoom must be a finite number")
	}
	focal := vp.Region().Center()
	if c.Query("fx") != "" || c.Query("fy") != "" {
		fx, errX := number(c, "fx")
		fy, errY := number(c, "fy")
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("fx and fy must both be finite numbers")
		}
		focal = core.Pt{X: fx, Y: fy}
	}
	vp.SetZoomAt(zoom, focal)
	return vp, nil
}

// surface reads w and h, defaulting to the map's logical size.
func surface(c *fiber.Ctx, space core.Size) (core.Size, error) {
	size := space
	for _, p := range []struct {
		key string
		dst *float64
	}{{"w", &size.W}, {"h", &size.H}} {
		if c.Query(p.key) == "" {
			continue
		}
		v, err := number(c, p.key)
		if err != nil || v <= 0 || v > 4096 {
			return core.Size{}, fmt.Errorf("%s must be a number in (0, 4096]", p.key)
		}
		*p.dst = v
	}
	return size, nil
}

// ResolveHandler maps a surface point at a given zoom to the state under it.
func ResolveHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		x, errX := number(c, "x")
		y, errY := number(c, "y")
		if errX != nil || errY != nil {
			return errBadRequest(c, "x and y are required finite numbers")
		}
		vp, err := viewport(c, deps)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		size, err := surface(c, deps.Map.Space)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		logical := vp.ToLogical(core.Pt{X: x, Y: y}, size)
		shape, found := deps.Hit.Resolve(logical)
		metrics.ObserveResolve(found)

		resp := fiber.Map{
			"found":   found,
			"logical": logical,
			"region":  vp.Region(),
			"zoom":    vp.Zoom(),
		}
		if found {
			resp["state"] = shape.ID
			resp["name"] = shape.Name
		}
		return c.JSON(resp)
	}
}

// SnapshotHandler renders the current region as PNG. With a session query
// parameter the session's answered states are colored by status.
func SnapshotHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vp, err := viewport(c, deps)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		size, err := surface(c, deps.Map.Space)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		opts := snapshot.Options{
			Width:    int(size.W),
			Height:   int(size.H),
			Region:   vp.Region(),
			FontPath: deps.FontPath,
		}
		if session := c.Query("session"); session != "" {
			if _, err := uuid.Parse(session); err != nil {
				return errBadRequest(c, "session must be a UUID")
			}
			book, err := deps.Store.Load(c.UserContext(), deps.sessionNamespace(session))
			if err != nil {
				LoggerFromCtx(c.UserContext()).Error("load answers", "error", err)
				return errInternal(c, "failed to load answers")
			}
			opts.Statuses = snapshot.Statuses(deps.Map.Summary(book, answeredIDs(book)))
		}

		c.Set(fiber.HeaderContentType, "image/png")
		if err := snapshot.RenderPNG(c.Response().BodyWriter(), deps.Map, opts); err != nil {
			LoggerFromCtx(c.UserContext()).Error("render snapshot", "error", err)
			return errInternal(c, "failed to render map")
		}
		return nil
	}
}

// CreateSessionHandler issues a new answer session id.
func CreateSessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metrics.SessionsCreated.Inc()
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": uuid.NewString()})
	}
}

// SessionMiddleware rejects malformed session ids.
func SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := uuid.Parse(c.Params("session")); err != nil {
			return errBadRequest(c, "session must be a UUID")
		}
		return c.Next()
	}
}

// AnswersView is one state's answers with the derived status.
type AnswersView struct {
	State   string         `json:"state"`
	Status  core.Status    `json:"status"`
	Label   string         `json:"label"`
	Answers core.AnswerSet `json:"answers"`
}

func (d *Dependencies) answersView(id string, set core.AnswerSet) AnswersView {
	rule, _ := d.Map.Rule(id)
	st := core.Classify(rule, set)
	return AnswersView{State: id, Status: st, Label: st.Label(), Answers: set}
}

// ListAnswersHandler returns every answer set in the session.
func ListAnswersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		book, err := deps.Store.Load(c.UserContext(), deps.sessionNamespace(c.Params("session")))
		if err != nil {
			LoggerFromCtx(c.UserContext()).Error("load answers", "error", err)
			return errInternal(c, "failed to load answers")
		}
		ids := answeredIDs(book)
		out := make([]AnswersView, 0, len(ids))
		for _, id := range ids {
			out = append(out, deps.answersView(id, book[id]))
		}
		return c.JSON(out)
	}
}

// GetAnswersHandler returns one state's answers.
func GetAnswersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		set, err := deps.Store.Get(c.UserContext(), deps.sessionNamespace(c.Params("session")), id)
		if errors.Is(err, answers.ErrNotFound) {
			return errNotFound(c, "no answers for state")
		}
		if err != nil {
			LoggerFromCtx(c.UserContext()).Error("get answers", "state", id, "error", err)
			return errInternal(c, "failed to load answers")
		}
		return c.JSON(deps.answersView(id, set))
	}
}

// PutAnswersHandler replaces a state's answers. The body uses the stored
// form: {"economic": "yes", "physical_0": "no"}.
func PutAnswersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		rule, ok := deps.Map.Rule(id)
		if !ok {
			return errNotFound(c, "state not found")
		}

		var set core.AnswerSet
		if err := set.UnmarshalJSON(c.Body()); err != nil {
			return errBadRequest(c, "invalid answers: "+err.Error())
		}
		if set.Economic != "" && !rule.HasQuestion() {
			return errBadRequest(c, "state has no economic question")
		}
		for i := range set.Physical {
			if i >= len(rule.PhysicalPrompts) {
				return errBadRequest(c, fmt.Sprintf("state has no physical prompt %d", i))
			}
		}

		session := c.Params("session")
		if err := deps.Store.Save(c.UserContext(), deps.sessionNamespace(session), id, set); err != nil {
			LoggerFromCtx(c.UserContext()).Error("save answers", "state", id, "error", err)
			return errInternal(c, "failed to save answers")
		}
		view := deps.answersView(id, set)
		deps.observers(session).OnAnswersCommitted(id, set, view.Status)
		return c.JSON(view)
	}
}

// DeleteAnswersHandler drops a state's answers.
func DeleteAnswersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		session := c.Params("session")
		if err := deps.Store.Delete(c.UserContext(), deps.sessionNamespace(session), id); err != nil {
			LoggerFromCtx(c.UserContext()).Error("delete answers", "state", id, "error", err)
			return errInternal(c, "failed to delete answers")
		}
		deps.observers(session).OnStateCleared(id)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// SummaryHandler returns the summary rows for every answered state.
func SummaryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		book, err := deps.Store.Load(c.UserContext(), deps.sessionNamespace(c.Params("session")))
		if err != nil {
			LoggerFromCtx(c.UserContext()).Error("load answers", "error", err)
			return errInternal(c, "failed to load answers")
		}
		return c.JSON(deps.Map.Summary(book, answeredIDs(book)))
	}
}

func answeredIDs(book core.AnswerBook) []string {
	ids := make([]string, 0, len(book))
	for id := range book {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
