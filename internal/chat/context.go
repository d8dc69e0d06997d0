// Package chat relays a scenario-aware conversation to a hosted language
// model and streams the reply back as text deltas.
package chat

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/ev-dss/internal/scenario"
)

// ScenarioContext is the scenario snapshot a client sends with its messages.
// Field names follow the client's wire format.
type ScenarioContext struct {
	PetrolPrice      float64 `json:"petrolPrice" yaml:"petrol_price"`
	ElectricityRate  float64 `json:"electricityRate" yaml:"electricity_rate"`
	ChargingCost     float64 `json:"chargingCost" yaml:"charging_cost"`
	GridCO2Factor    float64 `json:"gridCO2Factor" yaml:"grid_co2_factor"`
	EVSubsidy        float64 `json:"evSubsidy" yaml:"ev_subsidy"`
	EVPriceReduction float64 `json:"evPriceReduction" yaml:"ev_price_reduction"`
	ShowGreenGrid    bool    `json:"showGreenGrid" yaml:"show_green_grid"`

	EVTCO         float64 `json:"evTCO" yaml:"ev_tco"`
	ICETCO        float64 `json:"iceTCO" yaml:"ice_tco"`
	Savings       float64 `json:"savings" yaml:"savings"`
	BreakEven     string  `json:"breakEven" yaml:"break_even"`
	CO2Savings    float64 `json:"co2Savings" yaml:"co2_savings"`
	EVRecommended bool    `json:"evRecommended" yaml:"ev_recommended"`
}

// NewScenarioContext builds a context from a calculated scenario.
func NewScenarioContext(in scenario.Inputs, r scenario.Result) *ScenarioContext {
	return &ScenarioContext{
		PetrolPrice:      in.PetrolPrice,
		ElectricityRate:  in.ElectricityRate,
		ChargingCost:     in.ChargingCost,
		GridCO2Factor:    in.GridCO2Factor,
		EVSubsidy:        in.EVSubsidy,
		EVPriceReduction: in.EVPriceReduction,
		ShowGreenGrid:    in.GreenGrid,
		EVTCO:            r.EVTCO,
		ICETCO:           r.ICETCO,
		Savings:          r.Savings,
		BreakEven:        r.BreakEven.String(),
		CO2Savings:       r.CO2Savings,
		EVRecommended:    r.EVRecommended,
	}
}

var rupees = message.NewPrinter(language.MustParse("en-IN"))

// formatINR groups a whole-rupee amount the Indian way (12,34,567).
func formatINR(v float64) string {
	return rupees.Sprintf("%.0f", v)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

const promptIntro = `You are an expert EV vs ICE vehicle advisor for the Indian market. You help users understand the economic and environmental implications of their what-if scenarios.`

const promptGuidelines = `Guidelines:
- Provide insights specific to the Indian market context
- Explain how parameter changes affect EV vs ICE economics
- Consider factors like charging infrastructure, electricity tariffs, and government policies
- Be concise but informative
- Use Indian Rupee (₹) for currency
- When discussing savings, use Lakhs (L) for amounts above ₹1,00,000
- Suggest optimal scenarios for EV adoption based on the user's context`

// SystemPrompt renders the advisor instructions with sc embedded. A nil
// context is stated explicitly.
func SystemPrompt(sc *ScenarioContext) string {
	var b strings.Builder
	b.WriteString(promptIntro)
	b.WriteString("\n\nCurrent Scenario Context:\n")

	if sc == nil {
		b.WriteString("No scenario context provided\n")
	} else {
		recommendation := "ICE"
		if sc.EVRecommended {
			recommendation = "EV"
		}
		lines := []string{
			"- Petrol Price: ₹" + num(sc.PetrolPrice) + "/L",
			"- Electricity Rate: ₹" + num(sc.ElectricityRate) + "/kWh",
			"- Public Charging Cost: ₹" + num(sc.ChargingCost) + "/kWh",
			"- Grid CO₂ Factor: " + num(sc.GridCO2Factor) + " g/kWh",
			"- EV Subsidy: ₹" + num(sc.EVSubsidy),
			"- EV Price Reduction: " + num(sc.EVPriceReduction) + "%",
			"- Green Grid Enabled: " + strconv.FormatBool(sc.ShowGreenGrid),
			"",
			"Results:",
			"- EV TCO: ₹" + formatINR(sc.EVTCO),
			"- ICE TCO: ₹" + formatINR(sc.ICETCO),
			"- Total Savings: ₹" + formatINR(sc.Savings),
			"- Break-even Period: " + sc.BreakEven + " years",
			"- CO₂ Saved: " + num(sc.CO2Savings) + " kg",
			"- Recommendation: " + recommendation,
		}
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(promptGuidelines)
	return b.String()
}
