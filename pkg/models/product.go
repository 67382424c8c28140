package models

// Product is identified by its globally unique name.
type Product struct {
	Name              string `json:"Name"`
	HTMLDescriptionEN string `json:"HTMLDescription_EN"`
	HTMLDescriptionDE string `json:"HTMLDescription_DE"`
	ImageURL          string `json:"ImageUrl"`
	Object3DURL       string `json:"Object3D_Url"`
}

type ProductCategory struct {
	ID     int    `json:"Id"`
	NameEN string `json:"Name_EN"`
	NameDE string `json:"Name_DE"`
}

type ProductSpecification struct {
	ID          int    `json:"Id"`
	ProductName string `json:"Product_Name"`
	TitleEN     string `json:"Title_EN"`
	TitleDE     string `json:"Title_DE"`
	ValueEN     string `json:"Value_EN"`
	ValueDE     string `json:"Value_DE"`
	SortOrder   int    `json:"SortOrder"`
}

type ProductFeature struct {
	ID          int    `json:"Id"`
	ProductName string `json:"Product_Name"`
	FeatureEN   string `json:"Feature_EN"`
	FeatureDE   string `json:"Feature_DE"`
	SortOrder   int    `json:"SortOrder"`
}

type ProductAdvantage struct {
	ID          int    `json:"Id"`
	ProductName string `json:"Product_Name"`
	AdvantageEN string `json:"Advantage_EN"`
	AdvantageDE string `json:"Advantage_DE"`
	SortOrder   int    `json:"SortOrder"`
}

type ProductInstallation struct {
	ID                 int    `json:"Id"`
	ProductName        string `json:"Product_Name"`
	InstallationInfoEN string `json:"InstallationInfo_EN"`
	InstallationInfoDE string `json:"InstallationInfo_DE"`
}

type ProductDatasheet struct {
	ID              int    `json:"Id"`
	ProductName     string `json:"Product_Name"`
	FileURL         string `json:"FileUrl"`
	DatasheetNameEN string `json:"DatasheetName_EN"`
	DatasheetNameDE string `json:"DatasheetName_DE"`
}

// ProductDetail is a product with everything the detail panel renders.
type ProductDetail struct {
	Product
	Specifications []ProductSpecification `json:"specifications"`
	Features       []ProductFeature       `json:"features"`
	Advantages     []ProductAdvantage     `json:"advantages"`
	Installation   *ProductInstallation   `json:"installation,omitempty"`
	Datasheet      *ProductDatasheet      `json:"datasheet,omitempty"`
	Categories     []ProductCategory      `json:"categories"`
}
