package panelapi

type Label struct {
	ID     string `json:"id"`
	NameTr string `json:"nameTr"`
	NameEn string `json:"nameEn"`
}

type LabelRequest struct {
	NameTr string `json:"nameTr"`
	NameEn string `json:"nameEn"`
}

// Photo is a gallery entry. Labels is filled by the API on reads; writes send LabelIDs.
type Photo struct {
	ID            string   `json:"id"`
	ImageURL      string   `json:"imageUrl"`
	TitleTr       string   `json:"titleTr"`
	TitleEn       string   `json:"titleEn"`
	DescriptionTr string   `json:"descriptionTr"`
	DescriptionEn string   `json:"descriptionEn"`
	Labels        []Label  `json:"labels,omitempty"`
	LabelIDs      []string `json:"labelIds,omitempty"`
}

type PhotoRequest struct {
	ImageURL      string   `json:"imageUrl"`
	TitleTr       string   `json:"titleTr"`
	TitleEn       string   `json:"titleEn"`
	DescriptionTr string   `json:"descriptionTr"`
	DescriptionEn string   `json:"descriptionEn"`
	LabelIDs      []string `json:"labelIds"`
}
