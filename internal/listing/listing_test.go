package listing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"pet-adoption-catalog/internal/domain/pets"
)

func fixture() []pets.Pet {
	return []pets.Pet{
		{ID: "1", Name: "Rex", Species: pets.SpeciesDog, Gender: pets.GenderMale},
		{ID: "2", Name: "Michi", Species: pets.SpeciesCat, Gender: pets.GenderFemale},
		{ID: "3", Name: "ROXY", Species: pets.SpeciesDog, Gender: pets.GenderFemale},
		{ID: "4", Name: "Ñandú", Species: pets.SpeciesCat, Gender: pets.GenderMale},
		{ID: "5", Name: "Firulais", Species: pets.SpeciesDog, Gender: pets.GenderMale},
	}
}

func ids(items []pets.Pet) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter_Conjunctive(t *testing.T) {
	got := Filter(fixture(), Criteria{Species: "Perro", Gender: "Hembra"})
	require.Equal(t, []string{"3"}, ids(got))
}

func TestFilter_AllIsPassThrough(t *testing.T) {
	got := Filter(fixture(), Criteria{Species: All, Gender: All})
	require.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(got))
}

func TestFilter_SearchIsCaseInsensitiveUnanchored(t *testing.T) {
	require.Equal(t, []string{"1", "3", "5"}, ids(Filter(fixture(), Criteria{Search: "r"})))
	require.Equal(t, []string{"3"}, ids(Filter(fixture(), Criteria{Search: "oxY"})))
	require.Equal(t, []string{"4"}, ids(Filter(fixture(), Criteria{Search: "ñan"})))
	require.Empty(t, Filter(fixture(), Criteria{Search: "Perro"}), "search matches name only")
}

func TestFilter_FavoritesOnly(t *testing.T) {
	favs := map[string]struct{}{"5": {}, "2": {}, "stale": {}}
	got := Filter(fixture(), Criteria{FavoritesOnly: true, Favorites: favs, Gender: "Macho"})
	require.Equal(t, []string{"5"}, ids(got))
}

func TestPaginate_ClampsOutOfRange(t *testing.T) {
	items := fixture()

	p := Paginate(items, 2, 0)
	require.Equal(t, 1, p.Number)
	require.Equal(t, 3, p.Total)
	require.Equal(t, []string{"1", "2"}, ids(p.Items))

	p = Paginate(items, 2, 99)
	require.Equal(t, 3, p.Number)
	require.Equal(t, []string{"5"}, ids(p.Items))
	require.False(t, p.HasNext())
	require.True(t, p.HasPrev())
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate(nil, 8, 3)
	require.Equal(t, 1, p.Number)
	require.Equal(t, 0, p.Total)
	require.Empty(t, p.Items)
}

func TestQuery_FilterChangeResetsPage(t *testing.T) {
	q := NewQuery(2)
	q.Page = 3

	require.Equal(t, 1, q.WithSpecies("Gato").Page)
	require.Equal(t, 1, q.WithGender("Macho").Page)
	require.Equal(t, 1, q.WithSearch("x").Page)

	require.Equal(t, 3, q.Next(3).Page)
	require.Equal(t, 2, q.Prev().Page)
	require.Equal(t, 1, NewQuery(0).Prev().Page)
}

func TestRun_Deterministic(t *testing.T) {
	q := NewQuery(2).WithSpecies("Perro")
	a := Run(fixture(), q)
	b := Run(fixture(), q)
	require.Equal(t, a, b)
	require.Equal(t, []string{"1", "3"}, ids(a.Page.Items))
	require.Equal(t, 3, a.Page.Count)
}

func TestWindow_LoadMore(t *testing.T) {
	items := fixture()
	got, more := Window(items, 2)
	require.Equal(t, []string{"1", "2"}, ids(got))
	require.True(t, more)

	got, more = Window(items, 2+DefaultBatch)
	require.Len(t, got, 5)
	require.False(t, more)
}

func TestSelection_SelectAllIsVisiblePageOnly(t *testing.T) {
	page := Paginate(fixture(), 2, 1)
	s := NewSelection()
	s.SelectAll(page.Items)

	require.Equal(t, []string{"1", "2"}, s.IDs())
	require.True(t, s.AllSelected(page.Items))

	next := Paginate(fixture(), 2, 2)
	require.False(t, s.AllSelected(next.Items))
	require.Empty(t, s.Active(next.Items))
}

func TestSelection_InertIDsAreKept(t *testing.T) {
	s := NewSelection()
	s.Toggle("1")
	s.Toggle("2")

	cats := Filter(fixture(), Criteria{Species: "Gato"})
	require.Equal(t, []string{"2"}, s.Active(cats))
	require.Equal(t, 2, s.Len(), "filter change must not drop ids")

	all := Filter(fixture(), Criteria{})
	require.Equal(t, []string{"1", "2"}, s.Active(all))
}

func TestSelection_ToggleTwiceRoundTrips(t *testing.T) {
	s := NewSelection("7")
	require.True(t, s.Toggle("8"))
	require.False(t, s.Toggle("8"))
	require.Equal(t, []string{"7"}, s.IDs())

	s.Clear()
	require.Zero(t, s.Len())
	require.False(t, s.AllSelected(nil))
}

func ExamplePaginate() {
	p := Paginate(fixture(), 2, 5)
	fmt.Println(p.Number, p.Total, len(p.Items))
	// Output: 3 3 1
}
