package feequote

// PaymentOption represents the outbound fee quote request
type PaymentOption struct {
	Bin                        string             `json:"bin,omitempty"`
	PaymentAmount              int64              `json:"paymentAmount"`
	IDPSPList                  []PSPSearchItem    `json:"idPspList,omitempty"`
	PaymentMethod              string             `json:"paymentMethod,omitempty"`
	PrimaryCreditorInstitution string             `json:"primaryCreditorInstitution,omitempty"`
	Touchpoint                 string             `json:"touchpoint,omitempty"`
	TransferList               []TransferListItem `json:"transferList"`
}

// PSPSearchItem restricts a fee quote to a specific PSP
type PSPSearchItem struct {
	IDPSP string `json:"idPsp"`
}

// TransferListItem represents one transfer of the payment being quoted
type TransferListItem struct {
	CreditorInstitution string `json:"creditorInstitution"`
	DigitalStamp        bool   `json:"digitalStamp"`
	TransferCategory    string `json:"transferCategory"`
}

// BundleOption represents the fee quote response
type BundleOption struct {
	BelowThreshold bool      `json:"belowThreshold"`
	Bundles        []*Bundle `json:"bundleOptions"`
}

// Bundle represents one PSP-offered fee option for a payment context.
// IDPSP and PaymentMethod are nullable; a nil payment method means the bundle applies to any method.
type Bundle struct {
	Abi                  string  `json:"abi"`
	BundleDescription    string  `json:"bundleDescription"`
	BundleName           string  `json:"bundleName"`
	IDBrokerPSP          string  `json:"idBrokerPsp"`
	IDBundle             string  `json:"idBundle"`
	IDChannel            string  `json:"idChannel"`
	IDCIBundle           string  `json:"idCiBundle"`
	IDPSP                *string `json:"idPsp"`
	OnUs                 bool    `json:"onUs"`
	PaymentMethod        *string `json:"paymentMethod"`
	PrimaryCIIncurredFee int64   `json:"primaryCiIncurredFee"`
	TaxPayerFee          int64   `json:"taxPayerFee"`
	Touchpoint           string  `json:"touchpoint"`
}
