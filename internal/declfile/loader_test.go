package declfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
schemas:
  - name: user
    fields:
      - name: id
        source: user_id
        required: true
        type: int
      - name: email
        source: email_addr
        transform: [strip, lower]
      - name: status
        source: state
        default: active
        choices: [active, disabled]
      - name: contact
        fallback:
          primary: {source: email}
          backup: {source: phone}
      - name: full_name
        accumulate:
          separator: " "
          fields:
            - source: first_name
            - source: last_name
      - name: city
        nested:
          path: address
          field: {source: city}
  - name: admin
    extends: user
    fields:
      - name: role
        source: role
        default: admin
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version)
	require.Len(t, f.Schemas, 2)

	user := f.Schemas[0]
	assert.Equal(t, "user", user.Name)
	assert.Empty(t, user.Extends)
	require.Len(t, user.Fields, 6)

	// Leaf field
	id := user.Fields[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, "user_id", id.Source)
	assert.True(t, id.Required)
	assert.Equal(t, "int", id.Type)
	assert.False(t, id.IsComposite())

	// Transform list
	assert.Equal(t, StringArray{"strip", "lower"}, user.Fields[1].Transform)

	// Choices and default
	status := user.Fields[2]
	assert.Equal(t, "active", status.Default)
	assert.Equal(t, []any{"active", "disabled"}, status.Choices)

	// Composite blocks
	contact := user.Fields[3]
	require.NotNil(t, contact.Fallback)
	assert.Equal(t, "email", contact.Fallback.Primary.Source)
	assert.Equal(t, "phone", contact.Fallback.Backup.Source)
	assert.Equal(t, 1, contact.CompositeCount())

	fullName := user.Fields[4]
	require.NotNil(t, fullName.Accumulate)
	assert.Equal(t, " ", fullName.Accumulate.Separator)
	assert.Len(t, fullName.Accumulate.Fields, 2)

	city := user.Fields[5]
	require.NotNil(t, city.Nested)
	assert.Equal(t, "address", city.Nested.Path)
	assert.Equal(t, "city", city.Nested.Field.Source)

	admin := f.Schemas[1]
	assert.Equal(t, "user", admin.Extends)
	require.Len(t, admin.Fields, 1)
}

func TestParseSingleTransform(t *testing.T) {
	yaml := `
schemas:
  - name: s
    fields:
      - name: x
        source: x
        transform: strip
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	assert.Equal(t, StringArray{"strip"}, f.Schemas[0].Fields[0].Transform)
}

func TestParseDefaultsVersion(t *testing.T) {
	f, err := Parse([]byte("schemas: []"))
	require.NoError(t, err)
	assert.Equal(t, "1", f.Version)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("schemas: [unclosed"))
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	f := &File{
		Version: "1",
		Schemas: []SchemaDef{
			{
				Name: "user",
				Fields: []FieldDef{
					{Name: "id", Source: "user_id", Required: true, Type: "int"},
				},
			},
		},
	}

	data, err := Marshal(f)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, f, parsed)
}
