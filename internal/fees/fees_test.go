package fees

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_BaseFee(t *testing.T) {
	tests := []struct {
		name    string
		pickup  string
		drop    string
		wantFee int
	}{
		{
			name:    "both in ebenezer local zone",
			pickup:  "Ebenezer Hostel",
			drop:    "Ebenezer Gate",
			wantFee: BaseLocalZone,
		},
		{
			name:    "both in matangi local zone",
			pickup:  "Matangi Stage",
			drop:    "matangi shops",
			wantFee: BaseLocalZone,
		},
		{
			name:    "only one side ebenezer is not local",
			pickup:  "Ebenezer Hostel",
			drop:    "Town",
			wantFee: BaseDefault,
		},
		{
			name:    "juja drop hits secondary zone",
			pickup:  "Town",
			drop:    "Juja Square",
			wantFee: BaseSecondaryZone,
		},
		{
			name:    "jkuat abbreviation hits secondary zone",
			pickup:  "JKUAT Gate C",
			drop:    "Town",
			wantFee: BaseSecondaryZone,
		},
		{
			name:    "unknown locations fall back to default",
			pickup:  "Thika",
			drop:    "Ruiru",
			wantFee: BaseDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, extras := Compute(tt.pickup, tt.drop, "", "")
			assert.Equal(t, tt.wantFee, fee)
			assert.Empty(t, extras)
		})
	}
}

func TestCompute_Surcharges(t *testing.T) {
	tests := []struct {
		name       string
		items      string
		time       string
		wantFee    int
		wantExtras []string
	}{
		{
			name:       "grocery keyword adds supermarket pickup",
			items:      "grocery run",
			wantFee:    BaseDefault + SurchargeSupermarket,
			wantExtras: []string{TagSupermarketPickup},
		},
		{
			name:       "heavy keyword adds heavy item",
			items:      "two sacks of maize",
			wantFee:    BaseDefault + SurchargeHeavyItem,
			wantExtras: []string{TagHeavyItem},
		},
		{
			name:       "surcharges are additive",
			items:      "groceries and water",
			wantFee:    BaseDefault + SurchargeSupermarket + SurchargeHeavyItem,
			wantExtras: []string{TagSupermarketPickup, TagHeavyItem},
		},
		{
			name:       "night time adds night surcharge",
			items:      "book",
			time:       "10pm",
			wantFee:    BaseDefault + SurchargeNight,
			wantExtras: []string{TagNight},
		},
		{
			name:    "daytime adds nothing",
			items:   "book",
			time:    "2pm",
			wantFee: BaseDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, extras := Compute("Thika", "Ruiru", tt.items, tt.time)
			assert.Equal(t, tt.wantFee, fee)
			assert.ElementsMatch(t, tt.wantExtras, extras)
		})
	}
}

func TestCompute_AllRulesTogether(t *testing.T) {
	fee, extras := Compute("Ebenezer Hostel", "Ebenezer Gate", "groceries and water", "10pm")
	assert.Equal(t, 169, fee)
	assert.ElementsMatch(t, []string{TagSupermarketPickup, TagHeavyItem, TagNight}, extras)
}

func TestIsNightTime(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"22:00", true},
		{"21:00", true},
		{"20:59", false},
		{"06:00", false},
		{"05:30", true},
		{"00:15", true},
		{"", false},
		{"9pm", true},
		{"9 pm", true},
		{"8pm", false},
		{"11PM", true},
		{"5am", true},
		{"6am", false},
		{"7am", false},
		{"23", true},
		{"2", true},
		{"12", false},
		{"around noon", false},
		{"later today", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNightTime(tt.input), "input %q", tt.input)
		})
	}
}
