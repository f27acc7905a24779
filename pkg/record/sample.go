package record

// Sample returns the demonstration dataset. Each call returns a fresh slice.
func Sample() []Record {
	return []Record{
		New("John", 25, 50000, "IT"),
		New("Jane", 30, 60000, "HR"),
		New("Adam", 28, 55000, "IT"),
		New("Eve", 35, 70000, "Finance"),
		New("Mike", 40, 80000, "IT"),
		New("Sarah", 32, 45000, "HR"),
		New("David", 27, 90000, "Finance"),
		New("Anna", 29, 52000, "Finance"),
		New("Robert", 45, 95000, "IT"),
		New("Lisa", 38, 75000, "HR"),
		New("Tom", 31, 65000, "IT"),
		New("Emily", 26, 48000, "Finance"),
	}
}
