package service

import "github.com/yourusername/trivia-chatbot/internal/domain/entity"

// defaultTriviaQuestions - каталог по умолчанию, который записывается при первом запуске,
// если файл викторины отсутствует или пуст
func defaultTriviaQuestions() []entity.TriviaQuestion {
	q := func(text, a, b, c, d, correct string) entity.TriviaQuestion {
		return entity.TriviaQuestion{
			Question:      text,
			Options:       [entity.OptionsCount]string{a, b, c, d},
			CorrectAnswer: correct,
		}
	}

	return []entity.TriviaQuestion{
		q("What is typically the main purpose of a university library?",
			"Cafeteria services", "Academic research and study", "Sports activities", "Administrative meetings",
			"Academic research and study"),
		q("Which university service helps students with career planning?",
			"IT Help Desk", "Career Services Center", "Maintenance Department", "Security Office",
			"Career Services Center"),
		q("What does a university registrar typically handle?",
			"Food services", "Student records and enrollment", "Campus security", "Library books",
			"Student records and enrollment"),
		q("Which service usually provides mental health support for students?",
			"Counseling Center", "Finance Office", "Alumni Relations", "Parking Services",
			"Counseling Center"),
		q("What is the primary function of a university admissions office?",
			"Managing student housing", "Processing applications and enrollment", "Organizing sports events", "Maintaining buildings",
			"Processing applications and enrollment"),
		q("Which university service typically handles student financial aid?",
			"Academic Advising", "Financial Aid Office", "Campus Store", "Transportation Services",
			"Financial Aid Office"),
		q("What does IT Services at a university usually provide?",
			"Food delivery", "Technology support and resources", "Athletic training", "Legal advice",
			"Technology support and resources"),
		q("Which office typically coordinates student organizations and activities?",
			"Student Life Office", "Accounting Department", "Facilities Management", "Research Office",
			"Student Life Office"),
		q("What service helps international students with visa and cultural adaptation?",
			"Campus Safety", "International Student Services", "Dining Services", "Bookstore",
			"International Student Services"),
		q("Which university service typically manages dormitories and residence halls?",
			"Academic Affairs", "Housing and Residential Life", "Public Relations", "Alumni Office",
			"Housing and Residential Life"),
		q("What does a university health center primarily provide?",
			"Academic tutoring", "Medical care for students", "Career counseling", "Sports equipment",
			"Medical care for students"),
		q("Which service helps students choose courses and plan their academic path?",
			"Campus Security", "Academic Advising", "Food Services", "Transportation",
			"Academic Advising"),
		q("What is the main function of a university disability services office?",
			"Managing finances", "Providing accessibility accommodations", "Organizing events", "Maintaining equipment",
			"Providing accessibility accommodations"),
		q("Which university service typically handles parking permits and regulations?",
			"Library Services", "Parking and Transportation", "Student Government", "Research Division",
			"Parking and Transportation"),
		q("What does a university writing center usually offer?",
			"Computer repair", "Writing assistance and tutoring", "Athletic coaching", "Event planning",
			"Writing assistance and tutoring"),
	}
}
