package modules

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petal-labs/jutge/core"
)

// fakeBackend answers calls from a table keyed by function name.
type fakeBackend struct {
	mu      sync.Mutex
	replies map[string]*core.Result
	errs    map[string]error
	calls   []core.Call
}

func (f *fakeBackend) Execute(_ context.Context, call *core.Call) (*core.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, *call)
	if err, ok := f.errs[call.Func]; ok {
		return nil, err
	}
	if r, ok := f.replies[call.Func]; ok {
		return r, nil
	}
	return nil, &core.APIError{Kind: core.KindNotFound, Func: call.Func, Message: "no such function"}
}

func (f *fakeBackend) last(t *testing.T) core.Call {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func newAPI(replies map[string]*core.Result) (*API, *fakeBackend) {
	b := &fakeBackend{replies: replies, errs: map[string]error{}}
	return New(core.NewClient(b)), b
}

func output(s string) *core.Result {
	return &core.Result{Output: json.RawMessage(s)}
}

func inputJSON(t *testing.T, call core.Call) string {
	t.Helper()
	data, err := json.Marshal(call.Input)
	require.NoError(t, err)
	return string(data)
}

func TestMisc(t *testing.T) {
	logo := core.Download{Data: []byte{0x89, 'P', 'N', 'G'}, Name: "jutge.png", Type: "image/png", Field: "file_0"}
	api, _ := newAPI(map[string]*core.Result{
		"misc.getFortune": output(`"You will write Go today."`),
		"misc.getTime": output(`{"full_time": "2026-10-16T10:00:00.000Z", "int_timestamp": 1792144800,
			"float_timestamp": 1792144800.5, "time": "10:00:00", "date": "2026-10-16"}`),
		"misc.getHomepageStats": output(`{"users": 1, "problems": 2, "submissions": 3, "exams": 4, "contests": 5}`),
		"misc.getLogo":          {Output: json.RawMessage("null"), Downloads: []core.Download{logo}},
	})
	ctx := context.Background()

	fortune, err := api.Misc.GetFortune(ctx)
	require.NoError(t, err)
	assert.Equal(t, "You will write Go today.", fortune)

	tm, err := api.Misc.GetTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16T10:00:00.000Z", tm.FullTime)
	assert.Equal(t, int64(1792144800), tm.IntTimestamp)
	assert.InDelta(t, 1792144800.5, tm.FloatTimestamp, 1e-6)
	assert.Equal(t, "2026-10-16", tm.Date)

	stats, err := api.Misc.GetHomepageStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, HomepageStats{Users: 1, Problems: 2, Submissions: 3, Exams: 4, Contests: 5}, *stats)

	d, err := api.Misc.GetLogo(ctx)
	require.NoError(t, err)
	assert.Equal(t, logo, *d)
}

func TestTables(t *testing.T) {
	api, _ := newAPI(map[string]*core.Result{
		"tables.getLanguages": output(`{"ca": {"language_id": "ca", "own_name": "Català", "eng_name": "Catalan"}}`),
		"tables.getCompilers": output(`{"GCC": {"compiler_id": "GCC", "name": "GNU C Compiler", "language": "C"},
			"G++17": {"compiler_id": "G++17", "name": "GNU C++ Compiler", "language": "C++"}}`),
		"tables.get": output(`{"languages": {"en": {"language_id": "en"}}, "compilers": {"Python3": {"compiler_id": "Python3"}}}`),
	})
	ctx := context.Background()

	langs, err := api.Tables.GetLanguages(ctx)
	require.NoError(t, err)
	require.Contains(t, langs, "ca")
	assert.Equal(t, "Catalan", langs["ca"].EngName)

	compilers, err := api.Tables.GetCompilers(ctx)
	require.NoError(t, err)
	assert.Len(t, compilers, 2)
	assert.Equal(t, "C++", compilers["G++17"].Language)

	all, err := api.Tables.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Python3", all.Compilers["Python3"].CompilerID)
	assert.Equal(t, "en", all.Languages["en"].LanguageID)
}

func TestProblemsGetProblem(t *testing.T) {
	api, b := newAPI(map[string]*core.Result{
		"problems.getProblem": output(`{"problem_id": "P68688_en", "title": "Hello, world!",
			"abstract_problem": {"problem_nm": "P68688", "author": "Jordi Petit"}}`),
	})

	p, err := api.Problems.GetProblem(context.Background(), "P68688_en")
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!", p.Title)
	assert.Equal(t, "Jordi Petit", p.AbstractProblem.Author)
	assert.Equal(t, `"P68688_en"`, inputJSON(t, b.last(t)))
}

func TestProblemsNotFound(t *testing.T) {
	api, b := newAPI(nil)
	b.errs["problems.getProblem"] = &core.APIError{Kind: core.KindNotFound, Func: "problems.getProblem", Message: "problem not found"}

	_, err := api.Problems.GetProblem(context.Background(), "X00000_en")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStudent(t *testing.T) {
	api, b := newAPI(map[string]*core.Result{
		"student.profile.get":                    output(`{"user_uid": "u1", "name": "Ada"}`),
		"student.statuses.getAll":                output(`{"P68688": {"problem_nm": "P68688", "status": "accepted"}}`),
		"student.statuses.getForAbstractProblem": output(`{"problem_nm": "P68688", "status": "accepted", "nb_submissions": 2}`),
	})
	api.Client().SetToken("tok")
	ctx := context.Background()

	profile, err := api.Student.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.UserUID)
	require.NotNil(t, b.last(t).Meta)
	assert.Equal(t, "tok", b.last(t).Meta.Token)

	statuses, err := api.Student.GetStatuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, "accepted", statuses["P68688"].Status)

	st, err := api.Student.GetStatus(ctx, "P68688")
	require.NoError(t, err)
	assert.Equal(t, 2, st.Submissions)
	assert.Equal(t, `"P68688"`, inputJSON(t, b.last(t)))
}

func TestPlayground(t *testing.T) {
	negated := core.Download{Data: []byte("negated"), Name: "negated.png", Type: "image/png"}
	api, b := newAPI(map[string]*core.Result{
		"testing.playground.inc":    output(`{"a": 2, "b": 3}`),
		"testing.playground.add3i":  output(`6`),
		"testing.playground.negate": {Downloads: []core.Download{negated}},
	})
	ctx := context.Background()

	v, err := api.Playground.Inc(ctx, TwoInts{A: 1, B: 2})
	require.NoError(t, err)
	assert.Equal(t, TwoInts{A: 2, B: 3}, *v)
	assert.JSONEq(t, `{"a": 1, "b": 2}`, inputJSON(t, b.last(t)))

	n, err := api.Playground.Add3i(ctx, 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.JSONEq(t, `{"a": 1, "b": 2, "c": 3}`, inputJSON(t, b.last(t)))

	d, err := api.Playground.Negate(ctx, []byte("image"))
	require.NoError(t, err)
	assert.Equal(t, negated, *d)
	assert.Equal(t, [][]byte{[]byte("image")}, b.last(t).Files)
}

func TestUnexpectedOutput(t *testing.T) {
	api, _ := newAPI(map[string]*core.Result{
		"misc.getTime": output(`"not an object"`),
		"misc.getLogo": output(`null`),
	})

	_, err := api.Misc.GetTime(context.Background())
	assert.ErrorIs(t, err, core.ErrMalformedResponse)

	_, err = api.Misc.GetLogo(context.Background())
	assert.ErrorIs(t, err, core.ErrMalformedResponse)
}

func TestDecode(t *testing.T) {
	v, err := Decode[TwoInts](json.RawMessage(`{"a": 5}`))
	require.NoError(t, err)
	assert.Equal(t, 5, v.A)

	m, err := Decode[map[string]int](nil)
	require.NoError(t, err)
	assert.Nil(t, *m)

	_, err = Decode[int](json.RawMessage(`"x"`))
	assert.Error(t, err)
}
