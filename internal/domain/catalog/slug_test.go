package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSlug(t *testing.T) {
	t.Run("prefixes with lowercased name slug", func(t *testing.T) {
		slug := EncodeSlug("42", "Iron Teapot (Kyusu)")
		assert.True(t, strings.HasPrefix(slug, "iron-teapot-kyusu-"), slug)
	})

	t.Run("truncates long names", func(t *testing.T) {
		slug := EncodeSlug("42", "An Exceedingly Long Product Name That Never Ends")
		prefix := strings.TrimSuffix(slug, "-"+slug[strings.LastIndex(slug, "-")+1:])
		assert.LessOrEqual(t, len(prefix), slugNameMaxLen)
	})

	t.Run("handles name with no slug characters", func(t *testing.T) {
		slug := EncodeSlug("42", "茶壺")
		id, err := DecodeSlug(slug)
		require.NoError(t, err)
		assert.Equal(t, "42", id)
	})
}

func TestSlugRoundTrip(t *testing.T) {
	// Round-trip holds whenever the encoded id contains no hyphen; the
	// decoder splits on the last hyphen, as the share URLs always have.
	ids := []string{"1", "42", "4711", "a1b2"}
	for _, id := range ids {
		slug := EncodeSlug(id, "Linen Haori Jacket")
		decoded, err := DecodeSlug(slug)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestDecodeSlug(t *testing.T) {
	t.Run("rejects garbage", func(t *testing.T) {
		_, err := DecodeSlug("not-a-real-slug-!!!!")
		require.Error(t, err)
	})

	t.Run("decodes bare encoded id without prefix", func(t *testing.T) {
		slug := EncodeSlug("99", "")
		id, err := DecodeSlug(slug)
		require.NoError(t, err)
		assert.Equal(t, "99", id)
	})
}
