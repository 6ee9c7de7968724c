package query_test

import (
	"testing"

	"github.com/creachadair/jval"
	"github.com/creachadair/jval/internal/testutil"
	"github.com/creachadair/jval/query"
	"github.com/creachadair/jval/value"
	"github.com/google/go-cmp/cmp"
)

const testInput = `{
  "show": "The Experts",
  "episodes": [
    {"title": "Pilot", "airDate": "2021-11-30", "rating": 7.5, "tags": ["intro"]},
    {"title": "Second", "airDate": "2021-12-07", "rating": 8, "tags": []},
    {"title": "Third", "airDate": "2021-12-14", "rating": 6.25},
    {"title": "Finale", "airDate": "2021-12-21", "rating": 9, "tags": ["end", "intro"]}
  ],
  "meta": {"count": 4, "tags": ["tv"]}
}`

func TestQuery(t *testing.T) {
	val := testutil.MustDecode(t, testInput)

	tests := []struct {
		name  string
		query query.Query
		want  string // JSON text of the expected result, "" for error
	}{
		{"Root", query.Path(), testInput},
		{"Seq", query.Seq{query.Path("episodes"), query.Path(0), query.Path("airDate")}, `"2021-11-30"`},
		{"Path", query.Path("episodes", -1, "title"), `"Finale"`},
		{"PathQuery", query.Path("episodes", query.Len()), `4`},
		{"NoKey", query.Path("nonesuch"), ""},
		{"NotObject", query.Path("show", "x"), ""},
		{"NotArray", query.Path("meta", 0), ""},
		{"OutOfRange", query.Path("episodes", 4), ""},
		{"Each", query.Seq{query.Path("episodes"), query.Each("airDate")},
			`["2021-11-30","2021-12-07","2021-12-14","2021-12-21"]`},
		{"EachFail", query.Seq{query.Path("episodes"), query.Each("tags")}, ""},
		{"Slice", query.Seq{query.Path("episodes"), query.Slice(1, 3), query.Each("title")},
			`["Second","Third"]`},
		{"SliceNeg", query.Seq{query.Path("episodes"), query.Slice(-2, 0), query.Each("title")},
			`["Third","Finale"]`},
		{"SliceBad", query.Seq{query.Path("episodes"), query.Slice(3, 2)}, ""},
		{"Pick", query.Seq{query.Path("episodes"), query.Pick(3, 0, -1), query.Each("rating")},
			`[9,7.5,9]`},
		{"PickBad", query.Seq{query.Path("episodes"), query.Pick(7)}, ""},
		{"Len/Array", query.Path("episodes", query.Len()), `4`},
		{"Len/Object", query.Path("meta", query.Len()), `2`},
		{"Len/String", query.Path("show", query.Len()), `11`},
		{"Len/Number", query.Path("meta", "count", query.Len()), ""},
		{"Alt", query.Alt{query.Path("nonesuch"), query.Path("show")}, `"The Experts"`},
		{"AltNone", query.Alt{}, ""},
		{"Select", query.Seq{
			query.Path("episodes"),
			query.Selection(query.Exists("tags")),
			query.Each("title"),
		}, `["Pilot","Second","Finale"]`},
		{"Filter", query.Seq{
			query.Path("episodes"),
			query.Each("rating"),
			query.Filter(func(n value.Number) bool { return n >= 8 }),
		}, `[8,9]`},
		{"Map", query.Seq{
			query.Path("episodes"),
			query.Each("rating"),
			query.Map(func(n value.Number) value.Number { return n * 2 }),
		}, `[15,16,12.5,18]`},
		{"Contains", query.Seq{
			query.Path("episodes"),
			query.Each(query.Alt{query.Path("tags"), query.Value(value.ArrayOf())}),
			query.Selection(query.Contains(value.String("intro"))),
			query.Len(),
		}, `2`},
		{"Recur", query.Seq{query.Path("episodes"), query.Recur("tags", 0)}, `["intro","end"]`},
		{"Recur/Len", query.Seq{query.Recur("tags", 0), query.Len()}, `3`},
		{"RecurNone", query.Recur("nonesuch"), ""},
		{"Glob/Array", query.Seq{query.Path("meta", "tags"), query.Glob()}, `["tv"]`},
		{"Glob/Object", query.Seq{query.Path("episodes", 1), query.Glob(), query.Len()}, `4`},
		{"Glob/Scalar", query.Seq{query.Path("show"), query.Glob()}, ""},
		{"Const", query.Array{query.Null(), query.Bool(true), query.Number(3), query.String("s")},
			`[null,true,3,"s"]`},
		{"IsNot", query.Seq{
			query.Array{query.Null(), query.Path("show"), query.Number(1)},
			query.Selection(query.IsNot[value.Null]()),
		}, `["The Experts",1]`},
		{"Is", query.Seq{
			query.Array{query.Null(), query.Path("show"), query.Number(1)},
			query.Selection(query.Is[value.Number]()),
		}, `[1]`},
		{"Object", query.Object{
			"first": query.Path("episodes", 0, "title"),
			"n":     query.Path("meta", "count"),
		}, `{"first":"Pilot","n":4}`},
		{"ObjectFail", query.Object{"x": query.Path("nonesuch")}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := query.Eval(val, tc.query)
			if tc.want == "" {
				if err == nil {
					t.Errorf("Eval: got %s, want error", jval.Format(got, false))
				} else {
					t.Logf("Got expected error: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Eval: unexpected error: %v", err)
			}
			want := testutil.MustDecode(t, tc.want)
			if diff := cmp.Diff(want, got, testutil.ValueComparer); diff != "" {
				t.Errorf("Eval: got %s, want %s", jval.Format(got, false), tc.want)
			}
		})
	}
}
