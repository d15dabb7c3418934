package request

type BoardQuery struct {
	Status    string `form:"status"`
	AssetType string `form:"asset_type"`
	Search    string `form:"q"`
}
