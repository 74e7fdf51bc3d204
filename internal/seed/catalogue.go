package seed

// departmentProfile 院系对应的专长方向与技能池
type departmentProfile struct {
	Expertise []string
	Skills    []string
}

var departments = map[string]departmentProfile{
	"Information System": {
		Expertise: []string{"Business Intelligence", "Digital Transformation", "Enterprise Systems"},
		Skills:    []string{"ERP", "Business Analysis", "Agile", "Data Modeling", "Project Management"},
	},
	"Informatics": {
		Expertise: []string{"Software Engineering", "Web Development", "AI & Machine Learning"},
		Skills:    []string{"Laravel", "React", "Python", "Node.js", "TensorFlow"},
	},
	"Visual Communication Design": {
		Expertise: []string{"UI/UX Design", "Graphic Design", "Product Design"},
		Skills:    []string{"Figma", "Adobe XD", "Sketch", "Prototyping", "Illustrator"},
	},
	"Electrical Engineering": {
		Expertise: []string{"Embedded Systems", "IoT", "Power Systems"},
		Skills:    []string{"Arduino", "MATLAB", "PLC", "Circuit Design", "IoT"},
	},
	"Mechanical Engineering": {
		Expertise: []string{"CAD Design", "Thermodynamics", "Fluid Mechanics"},
		Skills:    []string{"SolidWorks", "ANSYS", "AutoCAD", "CFD", "MATLAB"},
	},
	"Civil Engineering": {
		Expertise: []string{"Structural Engineering", "Construction Management", "Transportation"},
		Skills:    []string{"SAP2000", "ETABS", "AutoCAD Civil 3D", "Surveying", "Primavera"},
	},
}

// departmentNames 固定顺序，保证同一随机种子生成相同数据
var departmentNames = []string{
	"Information System",
	"Informatics",
	"Visual Communication Design",
	"Electrical Engineering",
	"Mechanical Engineering",
	"Civil Engineering",
}

var cities = []string{
	"Surabaya", "Jakarta", "Bandung", "Yogyakarta", "Semarang",
	"Malang", "Medan", "Makassar", "Palembang", "Balikpapan",
}

var bios = []string{
	"A passionate mentor with hands-on industry experience.",
	"Committed to guiding students through practical knowledge and insights.",
	"Experienced in academic teaching and real-world applications.",
	"Driven by a desire to help future professionals grow and succeed.",
	"Combining years of technical experience with a love for education.",
}

var firstNames = []string{
	"Ahmad", "Budi", "Citra", "Dewi", "Eko", "Fajar", "Gita", "Hendra", "Indah", "Joko",
	"Kartika", "Lestari", "Made", "Nadia", "Putri", "Rizki", "Sari", "Taufik", "Wulan", "Yusuf",
}

var lastNames = []string{
	"Santoso", "Wijaya", "Ardini", "Pratama", "Saputra", "Hidayat", "Kurniawan",
	"Nugroho", "Lestari", "Setiawan", "Rahmawati", "Siregar", "Gunawan", "Susanto",
}

var feedbacks = []string{
	"Very clear explanations and practical examples.",
	"Helped me structure my thesis proposal.",
	"Great session, would book again.",
	"Good insights but the session felt a bit rushed.",
	"Patient and knowledgeable mentor.",
}

var sessionDurations = []int{30, 45, 60, 90}
