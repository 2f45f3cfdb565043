package clone_test

import (
	"casenara/clone"
	"casenara/options"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type orderForm struct {
	Customer string    `json:"customer"`
	Items    []line    `json:"items"`
	Due      time.Time `json:"due"`
	OnSave   func()    `json:"-"`
}

type line struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type draft struct {
	Title  string
	Seen   map[string]struct{}
	Notify func(string)
}

type listNode struct {
	Name string
	Next *listNode
	Hook func()
}

type sealedForm struct {
	Name   string
	Lines  []sealedLine
	OnSave func()
	secret int
}

type sealedLine struct {
	Product string
	cost    int
}

type versioned struct{ Rev int }

func (v versioned) Clone() versioned { return versioned{Rev: v.Rev + 1} }

type fragile struct{ V int }

func (fragile) Clone() fragile { panic("not today") }

func TestDeepCloneJSONValue(t *testing.T) {
	t.Parallel()

	src := map[string]any{
		"name":  "강아지",
		"price": 12000.0,
		"tags":  []any{"a", "b", map[string]any{"nested": true}},
		"meta":  map[string]any{"count": 3.0, "empty": nil},
	}

	res := clone.New().CloneValue(src)
	assert.Equal(t, options.TierStructural, res.Tier)

	got, ok := res.Value.(map[string]any)
	require.True(t, ok)

	if diff := cmp.Diff(src, got); diff != "" {
		t.Fatalf("clone differs (-src +clone):\n%s", diff)
	}

	// mutating the clone must not leak into the source
	got["meta"].(map[string]any)["count"] = 99.0
	got["tags"].([]any)[2].(map[string]any)["nested"] = false

	assert.Equal(t, 3.0, src["meta"].(map[string]any)["count"])
	assert.Equal(t, true, src["tags"].([]any)[2].(map[string]any)["nested"])
}

func TestDeepCloneDropsFunctions(t *testing.T) {
	t.Parallel()

	src := map[string]any{"fn": func() {}, "ok": 1}

	var got any
	require.NotPanics(t, func() { got = clone.DeepClone[any](src) })

	m, ok := got.(map[string]any)
	require.True(t, ok, spew.Sdump(got))

	assert.NotContains(t, m, "fn")
	assert.Equal(t, 1, m["ok"])
}

func TestDeepCloneStructWithFunc(t *testing.T) {
	t.Parallel()

	due := time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC)
	src := orderForm{
		Customer: "케이스나라",
		Items:    []line{{Product: "갤럭시 케이스", Quantity: 2}},
		Due:      due,
		OnSave:   func() {},
	}

	res := clone.New().CloneValue(src)
	assert.Equal(t, options.TierJSON, res.Tier)

	got, ok := res.Value.(orderForm)
	require.True(t, ok)

	assert.Nil(t, got.OnSave)
	assert.Equal(t, src.Customer, got.Customer)
	assert.Equal(t, src.Items, got.Items)
	assert.True(t, due.Equal(got.Due))

	got.Items[0].Quantity = 7
	assert.Equal(t, 2, src.Items[0].Quantity)
}

func TestDeepCloneKeepsSpecialKindsStructurally(t *testing.T) {
	t.Parallel()

	type state struct {
		At     time.Time
		Seen   map[string]struct{}
		ByID   map[int]string
		Err    error
		Counts [3]int
	}

	src := state{
		At:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local),
		Seen:   map[string]struct{}{"a": {}, "b": {}},
		ByID:   map[int]string{1: "one"},
		Err:    errors.New("boom"),
		Counts: [3]int{1, 2, 3},
	}

	got := clone.DeepClone(src)

	assert.True(t, src.At.Equal(got.At))
	assert.Equal(t, src.Seen, got.Seen)
	assert.Equal(t, src.ByID, got.ByID)
	assert.Equal(t, src.Counts, got.Counts)
	require.Error(t, got.Err)
	assert.Equal(t, "boom", got.Err.Error())
	assert.NotSame(t, src.Err, got.Err)

	got.Seen["c"] = struct{}{}
	assert.Len(t, src.Seen, 2)
}

func TestDeepCloneFallsBackToWalk(t *testing.T) {
	t.Parallel()

	src := draft{
		Title:  "초안",
		Seen:   map[string]struct{}{"x": {}},
		Notify: func(string) {},
	}

	// json cannot decode the set's list form back into a map, so walk wins
	res := clone.New().CloneValue(src)
	assert.Equal(t, options.TierWalk, res.Tier)

	got := res.Value.(draft)
	assert.Equal(t, "초안", got.Title)
	assert.Nil(t, got.Notify)
	assert.Equal(t, map[string]struct{}{"x": {}}, got.Seen)
}

func TestDeepCloneReducesSpecialKindsInJSONTier(t *testing.T) {
	t.Parallel()

	src := map[string]any{
		"err":  errors.New("boom"),
		"at":   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		"set":  map[string]struct{}{"b": {}, "a": {}},
		"byID": map[int]string{1: "one"},
		"node": domNode{ID: "root"},
		"ch":   make(chan int),
		"cb":   func() {},
	}

	res := clone.New().CloneValue(src)
	require.Equal(t, options.TierJSON, res.Tier)

	expected := map[string]any{
		"err":  map[string]any{"name": "*errors.errorString", "message": "boom", "stack": ""},
		"at":   "2024-01-05T00:00:00.000Z",
		"set":  []any{"a", "b"},
		"byID": map[string]any{"1": "one"},
	}

	if diff := cmp.Diff(expected, res.Value); diff != "" {
		t.Fatalf("unexpected json tier result (-want +got):\n%s", diff)
	}
}

func TestDeepCloneListsKeepPositions(t *testing.T) {
	t.Parallel()

	src := []any{1.0, func() {}, "x"}

	res := clone.New(clone.WithTiers(options.TierJSON)).CloneValue(src)
	assert.Equal(t, options.TierJSON, res.Tier)
	assert.Equal(t, []any{1.0, nil, "x"}, res.Value)

	res = clone.New(clone.WithTiers(options.TierWalk)).CloneValue(src)
	assert.Equal(t, options.TierWalk, res.Tier)
	assert.Equal(t, []any{1.0, nil, "x"}, res.Value)
}

func TestWalkTurnsErrorsIntoRecords(t *testing.T) {
	t.Parallel()

	c := clone.New(clone.WithTiers(options.TierWalk))

	src := map[string]any{"err": errors.New("boom"), "cb": func() {}}
	got := clone.Clone(c, src)

	assert.NotContains(t, got, "cb")

	rec, ok := got["err"].(*clone.ErrorRecord)
	require.True(t, ok, spew.Sdump(got))
	assert.Equal(t, "boom", rec.Message)
	assert.Equal(t, "*errors.errorString", rec.Name)

	type holder struct{ Err error }
	h := clone.Clone(c, holder{Err: errors.New("inner")})
	require.Error(t, h.Err)
	assert.Equal(t, "inner", h.Err.Error())
	assert.IsType(t, &clone.ErrorRecord{}, h.Err)
}

func TestCyclesAreReproduced(t *testing.T) {
	t.Parallel()

	a := &listNode{Name: "a"}
	b := &listNode{Name: "b", Next: a}
	a.Next = b

	got := clone.DeepClone(a)
	require.NotNil(t, got.Next)
	assert.NotSame(t, a, got)
	assert.Same(t, got, got.Next.Next)
	assert.Equal(t, "b", got.Next.Name)
}

func TestCyclesWithFunctionsFallThroughToWalk(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	c := clone.New(clone.WithLogger(zap.New(core)))

	a := &listNode{Name: "a", Hook: func() {}}
	a.Next = &listNode{Name: "b", Next: a}

	res := c.CloneValue(a)
	require.Equal(t, options.TierWalk, res.Tier)

	got := res.Value.(*listNode)
	assert.Nil(t, got.Hook)
	assert.Same(t, got, got.Next.Next)

	failures := logs.FilterMessage("clone tier failed, falling through").All()
	require.Len(t, failures, 2)
	assert.Equal(t, "structural", failures[0].ContextMap()["tier"])
	assert.Contains(t, failures[1].ContextMap()["error"], clone.ErrTooDeep.Error())
}

func TestSelfCloningTypes(t *testing.T) {
	t.Parallel()

	var _ clone.Cloneable[versioned] = versioned{}

	assert.Equal(t, 2, clone.DeepClone(versioned{Rev: 1}).Rev)

	res := clone.New().CloneValue(fragile{V: 5})
	assert.Equal(t, options.TierJSON, res.Tier, "a panicking Clone must fall through")
	assert.Equal(t, fragile{V: 5}, res.Value)
}

func TestUnserializableNumbersReachWalk(t *testing.T) {
	t.Parallel()

	src := map[string]any{"x": math.Inf(1), "cb": func() {}}

	res := clone.New().CloneValue(src)
	require.Equal(t, options.TierWalk, res.Tier)

	got := res.Value.(map[string]any)
	assert.True(t, math.IsInf(got["x"].(float64), 1))
	assert.NotContains(t, got, "cb")
}

func TestMaxDepth(t *testing.T) {
	t.Parallel()

	var nested any = "leaf"
	for range 50 {
		nested = []any{nested}
	}

	c := clone.New(clone.WithMaxDepth(10), clone.WithTiers(options.TierStructural|options.TierWalk))
	res := c.CloneValue(nested)
	assert.Equal(t, options.TierWalk, res.Tier)
	assert.Equal(t, nested, res.Value)
}

func TestNoTiers(t *testing.T) {
	t.Parallel()

	c := clone.New(clone.WithTiers(options.TierNone))

	res := c.CloneValue(map[string]any{"a": 1})
	assert.Equal(t, options.TierNone, res.Tier)
	assert.Nil(t, res.Value)

	assert.Zero(t, clone.Clone(c, line{Product: "x", Quantity: 1}))
}

func TestCloneNilAndDroppedRoots(t *testing.T) {
	t.Parallel()

	assert.Nil(t, clone.DeepClone[any](nil))
	assert.Nil(t, clone.DeepClone[*line](nil))

	res := clone.New().CloneValue(func() {})
	assert.Equal(t, options.TierWalk, res.Tier)
	assert.Nil(t, res.Value)
}

func TestNewErrorRecord(t *testing.T) {
	t.Parallel()

	assert.Nil(t, clone.NewErrorRecord(nil))

	rec := clone.NewErrorRecord(&wrapped{msg: "bad input"})
	assert.Equal(t, &clone.ErrorRecord{Name: "*clone_test.wrapped", Message: "bad input"}, rec)

	again := clone.NewErrorRecord(rec)
	assert.Equal(t, rec, again)
	assert.NotSame(t, rec, again)
}

func TestJSONTierKeepsScalarTypes(t *testing.T) {
	t.Parallel()

	src := map[string]any{
		"qty":    9,
		"id":     int64(9007199254740993),
		"ratio":  0.5,
		"small":  []any{int8(3), uint16(7), "x", true},
		"meta":   map[string]any{"count": uint(2)},
		"line":   line{Product: "케이스", Quantity: 2},
		"onSave": func() {},
	}

	res := clone.New().CloneValue(src)
	require.Equal(t, options.TierJSON, res.Tier)

	expected := map[string]any{
		"qty":   9,
		"id":    int64(9007199254740993),
		"ratio": 0.5,
		"small": []any{int8(3), uint16(7), "x", true},
		"meta":  map[string]any{"count": uint(2)},
		// records behind an interface come back as objects
		"line": map[string]any{"product": "케이스", "quantity": json.Number("2")},
	}

	if diff := cmp.Diff(expected, res.Value); diff != "" {
		t.Fatalf("unexpected json tier result (-want +got):\n%s", diff)
	}
}

func TestJSONTierKeepsUnexportedFields(t *testing.T) {
	t.Parallel()

	src := sealedForm{
		Name:   "x",
		Lines:  []sealedLine{{Product: "필름", cost: 3}},
		OnSave: func() {},
		secret: 7,
	}

	res := clone.New().CloneValue(src)
	require.Equal(t, options.TierJSON, res.Tier)

	got, ok := res.Value.(sealedForm)
	require.True(t, ok, spew.Sdump(res.Value))

	assert.Equal(t, "x", got.Name)
	assert.Equal(t, 7, got.secret)
	assert.Nil(t, got.OnSave)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, sealedLine{Product: "필름", cost: 3}, got.Lines[0])

	got.Lines[0].Product = "changed"
	assert.Equal(t, "필름", src.Lines[0].Product)
}

func TestSelfReferencingSlices(t *testing.T) {
	t.Parallel()

	src := make([]any, 2)
	src[0] = "x"
	src[1] = src

	got := clone.DeepClone(src)
	require.Len(t, got, 2)
	assert.NotSame(t, &src[0], &got[0])

	inner, ok := got[1].([]any)
	require.True(t, ok)
	assert.Same(t, &got[0], &inner[0])

	withFunc := make([]any, 2)
	withFunc[0] = func() {}
	withFunc[1] = withFunc

	res := clone.New(clone.WithMaxDepth(32)).CloneValue(withFunc)
	require.Equal(t, options.TierWalk, res.Tier)

	out := res.Value.([]any)
	assert.Nil(t, out[0])
	inner, ok = out[1].([]any)
	require.True(t, ok)
	assert.Same(t, &out[0], &inner[0])
}
