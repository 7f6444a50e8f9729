package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSlotCode(t *testing.T) {
	valid := []string{"A1", "b-12", "EV-01", "0", "ABCDEFGHIJ"}
	for _, c := range valid {
		assert.True(t, ValidSlotCode(c), "code %q", c)
	}
	invalid := []string{"", "A 1", "ABCDEFGHIJK", "A_1", "Ä1"}
	for _, c := range invalid {
		assert.False(t, ValidSlotCode(c), "code %q", c)
	}
}

func TestValidVehicleNumber(t *testing.T) {
	valid := []string{"KA01AB1234", "mh-12-ab-1234", "ABCD"}
	for _, v := range valid {
		assert.True(t, ValidVehicleNumber(v), "plate %q", v)
	}
	invalid := []string{"", "ABC", "ABCDEFGHIJKLMNOP", "AB 1234", "AB#12"}
	for _, v := range invalid {
		assert.False(t, ValidVehicleNumber(v), "plate %q", v)
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "A1", NormalizeCode(" a1 "))
	assert.Equal(t, "KA01AB1234", NormalizeCode("ka01ab1234"))
}

func TestValidUsername(t *testing.T) {
	assert.True(t, ValidUsername("john_doe"))
	assert.True(t, ValidUsername("abc"))
	assert.False(t, ValidUsername("ab"))
	assert.False(t, ValidUsername("this_username_is_way_too_long"))
	assert.False(t, ValidUsername("john doe"))
}

func TestValidEmailPhonePassword(t *testing.T) {
	assert.True(t, ValidEmail("user@example.com"))
	assert.False(t, ValidEmail("user@no-tld"))
	assert.True(t, ValidPhone("0123456789"))
	assert.False(t, ValidPhone("12345"))
	assert.False(t, ValidPhone("12345678901"))
	assert.True(t, ValidPassword("secret1"))
	assert.False(t, ValidPassword("short"))
}
