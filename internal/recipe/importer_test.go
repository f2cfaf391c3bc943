package recipe

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const recipePageHTML = `<html><head>
<script type="application/ld+json">
{"@context": "https://schema.org", "@graph": [
  {"@type": "WebSite", "name": "Some Food Blog"},
  {"@type": "Recipe",
   "name": "Weeknight Tomato Pasta",
   "recipeYield": "4 servings",
   "totalTime": "PT1H30M",
   "recipeIngredient": ["400 g spaghetti", "2 cloves garlic", "1/2 cup olive oil", "salt to taste"],
   "nutrition": {"calories": "520 kcal"}}
]}
</script>
</head><body><h1>Weeknight Tomato Pasta</h1></body></html>`

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestImporterFromDocument(t *testing.T) {
	im := NewImporter(zap.NewNop())

	rec, err := im.FromDocument(docFromHTML(t, recipePageHTML))
	require.NoError(t, err)

	assert.Equal(t, "Weeknight Tomato Pasta", rec.Title)
	assert.Equal(t, 4.0, rec.Servings)
	assert.Equal(t, 90.0, rec.ReadyInMinutes)

	require.Len(t, rec.Ingredients, 4)

	spaghetti := rec.Ingredients[0]
	require.NotNil(t, spaghetti.Amount)
	assert.Equal(t, 400.0, *spaghetti.Amount)
	assert.Equal(t, "g", spaghetti.Unit)
	assert.Equal(t, "spaghetti", spaghetti.Name)
	assert.Equal(t, "400 g spaghetti", spaghetti.Original)

	oil := rec.Ingredients[2]
	require.NotNil(t, oil.Amount)
	assert.Equal(t, 0.5, *oil.Amount, "fraction amounts are understood")
	assert.Equal(t, "cup", oil.Unit)
	assert.Equal(t, "olive oil", oil.Name)

	// No leading number: the whole line doubles as the name.
	salt := rec.Ingredients[3]
	assert.Nil(t, salt.Amount)
	assert.Equal(t, "salt to taste", salt.Name)

	cal, ok := rec.CaloriesPerServing()
	require.True(t, ok)
	assert.Equal(t, 520.0, cal)
}

func TestImporterNoRecipeMarkup(t *testing.T) {
	im := NewImporter(zap.NewNop())

	_, err := im.FromDocument(docFromHTML(t, `<html><body><p>just a blog post</p></body></html>`))
	assert.Error(t, err)

	_, err = im.FromDocument(docFromHTML(t,
		`<html><head><script type="application/ld+json">{"@type": "Article", "name": "x"}</script></head></html>`))
	assert.Error(t, err)
}

func TestParseISOMinutes(t *testing.T) {
	assert.Equal(t, 45.0, parseISOMinutes("PT45M"))
	assert.Equal(t, 90.0, parseISOMinutes("PT1H30M"))
	assert.Equal(t, 60.0, parseISOMinutes("pt1h"))
	assert.Equal(t, 0.0, parseISOMinutes("45 minutes"))
	assert.Equal(t, 0.0, parseISOMinutes(""))
}
