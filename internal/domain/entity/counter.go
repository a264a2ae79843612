package entity

// Counter is a single-row sequence allocator. The order-number counter is
// advanced with an atomic UPDATE ... RETURNING, never read-modify-write.
type Counter struct {
	Name  string `gorm:"size:100;primary_key" json:"name"`
	Value int64  `gorm:"not null;default:0" json:"value"`
}

// CounterOrderNumber names the counter row backing sequential order numbers.
const CounterOrderNumber = "order_number"

// TableName returns the table name for the Counter model
func (Counter) TableName() string {
	return "counters"
}
