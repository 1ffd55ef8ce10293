package request

// UpdateFieldRequest sets one order field by its dotted form name
type UpdateFieldRequest struct {
	Path  string `json:"path" binding:"required"`
	Value string `json:"value"`
}

// UpdateFieldsRequest sets several order fields at once, in the given order
type UpdateFieldsRequest struct {
	Fields []UpdateFieldRequest `json:"fields" binding:"required,min=1,dive"`
}

// UpdateItemRequest sets one field of an item
type UpdateItemRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}
