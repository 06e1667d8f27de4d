package entity

// Court is a bookable court. Deactivating a court hides it from the
// booking flow without deleting its booking history.
type Court struct {
	Base
	Name         string  `db:"name"`
	Description  *string `db:"description"`
	PricePerHour float64 `db:"price_per_hour"`
	OpenHour     int     `db:"open_hour"`
	CloseHour    int     `db:"close_hour"`
	IsActive     bool    `db:"is_active"`
}

// SlotHours lists the bookable hours of day for the court's operating
// window. The last slot starts one hour before close.
func (c *Court) SlotHours() []int {
	if c.CloseHour <= c.OpenHour {
		return nil
	}
	hours := make([]int, 0, c.CloseHour-c.OpenHour)
	for h := c.OpenHour; h < c.CloseHour; h++ {
		hours = append(hours, h)
	}
	return hours
}
