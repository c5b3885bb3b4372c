package adjustment

// Type represents the kind of stock adjustment. Sales-type adjustments are
// valued at selling price, goods-type adjustments at average cost.
type Type string

const (
	TypeSale         Type = "adj-sale"
	TypeSalesReturn  Type = "adj-sales-return"
	TypeGoodsReceive Type = "adj-goods-receive"
	TypeGoodsReturn  Type = "adj-goods-return"
)

// IsValid checks if the type is a known adjustment type
func (t Type) IsValid() bool {
	switch t {
	case TypeSale, TypeSalesReturn, TypeGoodsReceive, TypeGoodsReturn:
		return true
	}
	return false
}

// String returns the string representation of Type
func (t Type) String() string {
	return string(t)
}

// IsSalesType returns true for adjustments valued at selling price
func (t Type) IsSalesType() bool {
	return t == TypeSale || t == TypeSalesReturn
}

// IsGoodsType returns true for adjustments valued at average cost
func (t Type) IsGoodsType() bool {
	return t == TypeGoodsReceive || t == TypeGoodsReturn
}
