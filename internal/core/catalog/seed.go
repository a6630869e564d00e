package catalog

// SampleProducts is a small built-in set so search has candidates before any
// scrape has run. Mirrors the shape scraped products take.
func SampleProducts() []Product {
	return []Product{
		{Title: "Samsung Galaxy M34 5G", Description: "6.5 inch sAMOLED display, 6000mAh battery", Price: 18999, MRP: 24999, Rating: 4.3, Stock: 120, Sales: 5400, Category: "mobiles", Metadata: map[string]string{"brand": "Samsung", "model": "Galaxy M34"}},
		{Title: "Redmi Note 13 Pro", Description: "200MP camera, Snapdragon 7s Gen 2", Price: 23999, MRP: 27999, Rating: 4.1, Stock: 85, Sales: 8100, Category: "mobiles", Metadata: map[string]string{"brand": "Xiaomi", "model": "Note 13 Pro"}},
		{Title: "iPhone 15", Description: "A16 Bionic, 48MP main camera", Price: 69999, MRP: 79900, Rating: 4.6, Stock: 40, Sales: 12500, Category: "mobiles", Metadata: map[string]string{"brand": "Apple", "model": "iPhone 15"}},
		{Title: "HP Pavilion 15 Laptop", Description: "Intel i5 12th gen, 16GB RAM, 512GB SSD", Price: 58999, MRP: 72999, Rating: 4.2, Stock: 30, Sales: 2100, Category: "laptops", Metadata: map[string]string{"brand": "HP", "model": "Pavilion 15"}},
		{Title: "Lenovo IdeaPad Slim 3", Description: "Ryzen 5 5500U, 8GB RAM, budget laptop for students", Price: 34999, MRP: 42999, Rating: 4.0, Stock: 55, Sales: 4300, Category: "laptops", Metadata: map[string]string{"brand": "Lenovo", "model": "IdeaPad Slim 3"}},
		{Title: "MacBook Air M2", Description: "13.6 inch Liquid Retina, 8GB unified memory", Price: 92999, MRP: 114900, Rating: 4.8, Stock: 15, Sales: 3800, Category: "laptops", Metadata: map[string]string{"brand": "Apple", "model": "MacBook Air M2"}},
		{Title: "Sony WH-1000XM5", Description: "Industry leading noise cancelling headphones", Price: 26999, MRP: 34990, Rating: 4.7, Stock: 60, Sales: 6700, Category: "headphones", Metadata: map[string]string{"brand": "Sony", "model": "WH-1000XM5"}},
		{Title: "boAt Rockerz 450", Description: "Wireless on-ear headphones, 15 hour playback", Price: 1499, MRP: 3990, Rating: 4.0, Stock: 300, Sales: 21000, Category: "headphones", Metadata: map[string]string{"brand": "boAt", "model": "Rockerz 450"}},
		{Title: "JBL Tune 510BT", Description: "Pure bass wireless headphones", Price: 2999, MRP: 4999, Rating: 4.2, Stock: 0, Sales: 9800, Category: "headphones", Metadata: map[string]string{"brand": "JBL", "model": "Tune 510BT"}},
	}
}
