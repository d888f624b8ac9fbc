package sheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParser(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := NewParser(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptySheet)
	})

	t.Run("missing phone column", func(t *testing.T) {
		_, err := NewParser(strings.NewReader("name,city\nA,Surat\n"))
		assert.ErrorIs(t, err, ErrMissingPhoneColumn)
	})

	t.Run("strips UTF-8 BOM", func(t *testing.T) {
		input := "\xEF\xBB\xBFPhone,Business Name\n9876543210,Sharma Garments\n"
		p, err := NewParser(strings.NewReader(input))
		require.NoError(t, err)
		rows, rowErrors := p.ParseAll()
		assert.Empty(t, rowErrors)
		require.Len(t, rows, 1)
		assert.Equal(t, "9876543210", rows[0].Phone)
	})
}

func TestParser_ParseAll(t *testing.T) {
	t.Run("maps aliased headers", func(t *testing.T) {
		input := strings.Join([]string{
			"Mobile Number,Shop Name,Owner,GSTIN,City,Pin Code",
			"98765 43210,Sharma Garments,Ramesh,24AAACS1234A1Z5,Surat,395003",
			"+91 9123456789,Patel Textiles,,,Ahmedabad,380001",
		}, "\n")

		p, err := NewParser(strings.NewReader(input))
		require.NoError(t, err)

		rows, rowErrors := p.ParseAll()
		assert.Empty(t, rowErrors)
		require.Len(t, rows, 2)

		assert.Equal(t, "98765 43210", rows[0].Phone)
		assert.Equal(t, "Sharma Garments", rows[0].BusinessName)
		assert.Equal(t, "Ramesh", rows[0].ContactPerson)
		assert.Equal(t, "24AAACS1234A1Z5", rows[0].GSTNumber)
		assert.Equal(t, "395003", rows[0].Pincode)
		assert.Equal(t, "+91 9123456789", rows[1].Phone)
	})

	t.Run("drops incomplete rows silently", func(t *testing.T) {
		input := strings.Join([]string{
			"phone,business name",
			",No Phone Traders",
			"9876543210,",
			"9123456789,Good Shop",
		}, "\n")

		p, err := NewParser(strings.NewReader(input))
		require.NoError(t, err)

		rows, rowErrors := p.ParseAll()
		assert.Empty(t, rowErrors)
		require.Len(t, rows, 1)
		assert.Equal(t, "Good Shop", rows[0].BusinessName)
	})

	t.Run("skips blank rows silently", func(t *testing.T) {
		input := "phone,business name\n,,\n9876543210,Sharma Garments\n , \n"
		p, err := NewParser(strings.NewReader(input))
		require.NoError(t, err)

		rows, rowErrors := p.ParseAll()
		assert.Empty(t, rowErrors)
		assert.Len(t, rows, 1)
	})

	t.Run("tolerates short records", func(t *testing.T) {
		input := "phone,business name,email\n9876543210,Sharma Garments\n"
		p, err := NewParser(strings.NewReader(input))
		require.NoError(t, err)

		rows, rowErrors := p.ParseAll()
		assert.Empty(t, rowErrors)
		require.Len(t, rows, 1)
		assert.Empty(t, rows[0].Email)
	})
}
