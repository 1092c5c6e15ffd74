package entities

// Reference data shared by the courier desk. Table and column names follow
// the bookstore database the desk was first deployed against.

type Courier struct {
	ID           uint   `gorm:"column:courier_id;primaryKey;autoIncrement:false" json:"courier_id"`
	Name         string `gorm:"size:200" json:"name"`
	PasswordHash string `gorm:"column:password_hash;size:128" json:"-"`
}

func (Courier) TableName() string {
	return "courier"
}

type Customer struct {
	ID    uint   `gorm:"column:customer_id;primaryKey;autoIncrement:false" json:"customer_id"`
	Name  string `gorm:"size:200" json:"name"`
	Phone string `gorm:"size:40" json:"phone"`
}

func (Customer) TableName() string {
	return "customer"
}

type Book struct {
	ISBN   string `gorm:"column:isbn;primaryKey;size:20" json:"isbn"`
	Title  string `gorm:"size:512" json:"title"`
	Author string `gorm:"size:256" json:"author"`
}

func (Book) TableName() string {
	return "book"
}
