package sysvar

const (
	// AccountStorageOverhead is charged on top of the data length of every account.
	AccountStorageOverhead uint64 = 128

	DefaultLamportsPerByteYear uint64  = 1_000_000_000 / 100 * 365 / (1024 * 1024)
	DefaultExemptionThreshold  float64 = 2.0
	DefaultBurnPercent         uint8   = 50

	RentSize = 17
)

type Rent struct {
	LamportsPerByteYear uint64  `json:"lamports_per_byte_year" yaml:"lamports_per_byte_year"`
	ExemptionThreshold  float64 `json:"exemption_threshold" yaml:"exemption_threshold"`
	BurnPercent         uint8   `json:"burn_percent" yaml:"burn_percent"`
}

func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
		BurnPercent:         DefaultBurnPercent,
	}
}

func (Rent) Kind() Kind { return KindRent }

func (r Rent) clone() Sysvar { return r }

// MinimumBalance is the lamport balance that makes an account of dataLen bytes rent exempt.
func (r Rent) MinimumBalance(dataLen int) uint64 {
	bytes := AccountStorageOverhead + uint64(dataLen)
	return uint64(float64(bytes*r.LamportsPerByteYear) * r.ExemptionThreshold)
}
