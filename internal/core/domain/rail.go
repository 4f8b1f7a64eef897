package domain

import "fmt"

// RailProfile binds a payment method to its provider and minimum KYC tier.
type RailProfile struct {
	Method       PaymentMethod
	ProviderSlug string
	ProviderName string
	MinimumKyc   KycLevel
}

var railProfiles = map[PaymentMethod]RailProfile{
	MethodPIX:    {Method: MethodPIX, ProviderSlug: "pix", ProviderName: "pix-provider", MinimumKyc: KycBasic},
	MethodBoleto: {Method: MethodBoleto, ProviderSlug: "boleto", ProviderName: "boleto-provider", MinimumKyc: KycBasic},
	MethodTED:    {Method: MethodTED, ProviderSlug: "ted", ProviderName: "ted-provider", MinimumKyc: KycFull},
	MethodCard:   {Method: MethodCard, ProviderSlug: "card", ProviderName: "card-provider", MinimumKyc: KycBasic},
}

// RailProfileFor is total over the four supported methods.
func RailProfileFor(method PaymentMethod) (RailProfile, bool) {
	p, ok := railProfiles[method]
	return p, ok
}

// ProviderNameFor returns the provider handling the given method.
func ProviderNameFor(method PaymentMethod) string {
	return railProfiles[method].ProviderName
}

// ProviderConfirmPathFor returns the provider confirm endpoint path.
func ProviderConfirmPathFor(method PaymentMethod) string {
	return fmt.Sprintf("/providers/%s/confirm", railProfiles[method].ProviderSlug)
}

// ProviderNames lists every configured provider, for breaker construction.
func ProviderNames() []string {
	names := make([]string, 0, len(railProfiles))
	for _, m := range []PaymentMethod{MethodPIX, MethodBoleto, MethodTED, MethodCard} {
		names = append(names, railProfiles[m].ProviderName)
	}
	return names
}

// ProviderUnknown labels finalizations where no provider was reached.
const ProviderUnknown = "unknown"

// ProviderStrategy selects the provider endpoint for a payment method.
// The table is static: no open registration.
type ProviderStrategy struct {
	ProviderName string
	Path         string
}

// StrategyFor is total over the four supported methods.
func StrategyFor(method PaymentMethod) ProviderStrategy {
	return ProviderStrategy{
		ProviderName: ProviderNameFor(method),
		Path:         ProviderConfirmPathFor(method),
	}
}
