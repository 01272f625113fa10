package config

const (
	hyp3URLVar         = "HYP3_API_URL"
	hyp3ProductsURLVar = "HYP3_PRODUCTS_URL"
	maxRotationsVar    = "HYP3_MAX_KEY_ROTATIONS"

	// PageSize is the number of records requested per product page.
	PageSize = 100
)

type Hyp3Config interface {
	GetHyp3URL() string
	GetProductsURL() string
	GetPageSize() int
	GetMaxKeyRotations() int
}

type Hyp3 struct{}

var _ Hyp3Config = Hyp3{}

func (Hyp3) GetHyp3URL() string {
	return GetEnv(hyp3URLVar, "https://api.hyp3.asf.alaska.edu/")
}

// GetProductsURL returns the endpoint product listings are served from. It differs
// from the main API URL on the production deployment.
func (Hyp3) GetProductsURL() string {
	return GetEnv(hyp3ProductsURLVar, "http://hyp3-api-prod.us-east-1.elasticbeanstalk.com/")
}

func (Hyp3) GetPageSize() int {
	return PageSize
}

// GetMaxKeyRotations bounds API key rotations per listing. Zero means unbounded.
func (Hyp3) GetMaxKeyRotations() int {
	return GetEnvInt(maxRotationsVar, 0)
}
