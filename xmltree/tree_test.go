package xmltree

import (
	"bytes"
	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

const singleResult = `<?xml version="1.0"?>
<AddressValidationResponse>
  <Response><ResponseStatusCode>1</ResponseStatusCode></Response>
  <AddressValidationResult>
    <Rank>1</Rank>
    <Address><City>TIMONIUM</City></Address>
  </AddressValidationResult>
</AddressValidationResponse>`

const multiResult = `<?xml version="1.0"?>
<AddressValidationResponse>
  <Response><ResponseStatusCode>1</ResponseStatusCode></Response>
  <AddressValidationResult>
    <Rank>1</Rank>
    <Address><City>TIMONIUM</City></Address>
  </AddressValidationResult>
  <AddressValidationResult>
    <Rank>2</Rank>
    <Address><City>LUTHERVILLE</City></Address>
  </AddressValidationResult>
</AddressValidationResponse>`

func TestParse_SingleAndRepeatedElements(t *testing.T) {
	single, err := Parse([]byte(singleResult))
	require.NoError(t, err)
	multi, err := Parse([]byte(multiResult))
	require.NoError(t, err)

	_, isMap := single["AddressValidationResponse"].(Map)["AddressValidationResult"].(Map)
	assert.True(t, isMap, "single occurrence maps directly")

	_, isList := multi["AddressValidationResponse"].(Map)["AddressValidationResult"].([]any)
	assert.True(t, isList, "repeated occurrence maps to a list")

	assert.Len(t, single.List("AddressValidationResponse", "AddressValidationResult"), 1)
	assert.Len(t, multi.List("AddressValidationResponse", "AddressValidationResult"), 2)
}

func TestEnsureList_SingleAndListAgree(t *testing.T) {
	entry := Map{"Rank": "1", "Quality": "0.98"}

	fromSingle := EnsureList(entry)
	fromList := EnsureList([]any{Map{"Rank": "1", "Quality": "0.98"}})

	require.Len(t, fromSingle, 1)
	assert.Equal(t, fromList, fromSingle)
}

func TestEnsureList_Shapes(t *testing.T) {
	assert.Equal(t, []any{}, EnsureList(nil))
	assert.Equal(t, []any{"x"}, EnsureList("x"))
	assert.Len(t, EnsureList([]any{Map{}, Map{}, Map{}}), 3)
	assert.Len(t, EnsureList([]map[string]any{{}, {}}), 2)
	assert.Len(t, EnsureList(map[string]any{"a": "b"}), 1)
}

func TestCoerce_TreeAndMapViewsAgree(t *testing.T) {
	doc, err := xmlquery.Parse(bytes.NewReader([]byte(multiResult)))
	require.NoError(t, err)

	fromTree, err := Coerce(doc)
	require.NoError(t, err)
	fromText, err := Coerce(multiResult)
	require.NoError(t, err)
	fromPlainMap, err := Coerce(map[string]any(fromText))
	require.NoError(t, err)

	assert.Equal(t, fromText, fromTree)
	assert.Equal(t, fromText, fromPlainMap)

	_, err = Coerce(42)
	assert.Error(t, err)
	_, err = Coerce(nil)
	assert.ErrorIs(t, err, ErrNoRoot)
}

func TestMap_Accessors(t *testing.T) {
	m, err := Parse([]byte(multiResult))
	require.NoError(t, err)

	assert.Equal(t, "1", m.String("AddressValidationResponse", "Response", "ResponseStatusCode"))
	assert.Equal(t, "TIMONIUM", m.String("AddressValidationResponse", "AddressValidationResult", "Address", "City"),
		"a repeated intermediate element resolves to its first occurrence")
	assert.Equal(t, "", m.String("AddressValidationResponse", "Missing"))
	assert.Nil(t, m.Map("AddressValidationResponse", "Nope"))
	assert.True(t, m.Has("AddressValidationResponse", "Response"))
	assert.Empty(t, m.List("AddressValidationResponse", "Nope"))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("<open><unclosed></open>"))
	assert.Error(t, err)
}

func TestRender_RoundTripsThroughParse(t *testing.T) {
	root := Element("TrackRequest",
		Element("Request",
			Text("RequestAction", "Track"),
			Text("RequestOption", "1"),
		),
		TextIf("Blank", "  "),
		When(false, Text("Skipped", "x")),
		Text("TrackingNumber", "1Z5FX0076803466397"),
	)

	out := Render(root)
	assert.True(t, bytes.HasPrefix(out, []byte(`<?xml version="1.0"?>`)))

	m, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "Track", m.String("TrackRequest", "Request", "RequestAction"))
	assert.Equal(t, "1Z5FX0076803466397", m.String("TrackRequest", "TrackingNumber"))
	assert.False(t, m.Has("TrackRequest", "Blank"))
	assert.False(t, m.Has("TrackRequest", "Skipped"))
}

func TestRender_EscapesText(t *testing.T) {
	out := Render(Text("City", "A & B <C>"))

	m, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "A & B <C>", m.String("City"))
}

func TestMap_ListKeepsEmptyEntries(t *testing.T) {
	m, err := Parse([]byte(`<R><Item><Code>1</Code></Item><Item/><Item>text</Item></R>`))
	require.NoError(t, err)

	items := m.List("R", "Item")
	require.Len(t, items, 3)
	assert.Equal(t, "1", items[0].String("Code"))
	assert.Equal(t, Map{}, items[1])
	assert.Equal(t, Map{}, items[2])
}

func TestMap_TypedListsResolve(t *testing.T) {
	m := Map{"R": Map{
		"Plain": []map[string]any{{"City": "A"}, {"City": "B"}},
		"Typed": []Map{{"City": "C"}},
		"Empty": []Map{},
	}}

	assert.Equal(t, "A", m.String("R", "Plain", "City"))
	assert.Equal(t, Map{"City": "A"}, m.Map("R", "Plain"))
	assert.Equal(t, "C", m.Map("R", "Typed").String("City"))
	assert.Len(t, m.List("R", "Plain"), 2)
	assert.Nil(t, m.Map("R", "Empty"))
	assert.False(t, m.Has("R", "Empty", "City"))
}
