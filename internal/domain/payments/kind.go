package payments

// Kind is the closed set of payment obligations the fulfillment engine knows
// how to settle. Adding a kind means revisiting every switch that consumes it.
type Kind string

const (
	KindSubscriptionPurchase Kind = "subscription_purchase"
	KindSubscriptionRenewal  Kind = "subscription_renewal"
	KindPublicationFee       Kind = "publication_fee"
	KindArticlePurchase      Kind = "article_purchase"
	KindIssuePurchase        Kind = "issue_purchase"
	KindMembership           Kind = "membership"
	KindDonation             Kind = "donation"
)

// Kinds lists every supported payment kind.
func Kinds() []Kind {
	return []Kind{
		KindSubscriptionPurchase,
		KindSubscriptionRenewal,
		KindPublicationFee,
		KindArticlePurchase,
		KindIssuePurchase,
		KindMembership,
		KindDonation,
	}
}

func (k Kind) Valid() bool {
	switch k {
	case KindSubscriptionPurchase, KindSubscriptionRenewal,
		KindPublicationFee, KindArticlePurchase, KindIssuePurchase,
		KindMembership, KindDonation:
		return true
	}
	return false
}

// Description is the base line-item name shown on gateway invoices.
func (k Kind) Description() string {
	switch k {
	case KindSubscriptionPurchase:
		return "Subscription purchase"
	case KindSubscriptionRenewal:
		return "Subscription renewal"
	case KindPublicationFee:
		return "Publication fee"
	case KindArticlePurchase:
		return "Article purchase"
	case KindIssuePurchase:
		return "Issue purchase"
	case KindMembership:
		return "Membership"
	case KindDonation:
		return "Donation"
	}
	return "Payment"
}
