package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCronExpression(t *testing.T) {
	expr, err := validateCronExpression(" 0 */6 * * * ")
	require.NoError(t, err)
	assert.Equal(t, "0 */6 * * *", expr)

	_, err = validateCronExpression("every six hours")
	assert.Error(t, err)
	_, err = validateCronExpression("")
	assert.Error(t, err)
}

func TestValidateBaseURL(t *testing.T) {
	url, err := validateBaseURL("https://abc.supabase.co/")
	require.NoError(t, err)
	assert.Equal(t, "https://abc.supabase.co", url)

	_, err = validateBaseURL("abc.supabase.co")
	assert.Error(t, err)
}

func TestValidateChoices(t *testing.T) {
	src, err := validateSource("Mirror")
	require.NoError(t, err)
	assert.Equal(t, "mirror", src)
	_, err = validateSource("cache")
	assert.Error(t, err)

	provider, err := validateProvider("none")
	require.NoError(t, err)
	assert.Empty(t, provider)
	_, err = validateProvider("anthropic")
	assert.Error(t, err)

	days, err := validateDays("")
	require.NoError(t, err)
	assert.Equal(t, "all", days)
	_, err = validateDays("-3")
	assert.Error(t, err)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, []string{"Samsung", "LG"}, parseList("Samsung, ,LG"))
	assert.Equal(t, "(not set)", maskSensitiveData("", "*"))
	assert.Equal(t, "***", maskSensitiveData("short", "*"))
	assert.Equal(t, "sk-a...wxyz", maskSensitiveData("sk-abcdefwxyz", "*"))
	assert.Equal(t, "1.5K", formatCount(1500))
	assert.Equal(t, "999", formatCount(999))
	assert.Equal(t, "2.0m", formatDuration(2*time.Minute))
}
