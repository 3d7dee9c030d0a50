package generate

import (
	"fmt"
	"math/rand"

	"quizdeck/internal/quiz"
)

// FallbackQuestions serves hand-authored questions for known topics and pads
// with generic placeholders when the bank runs short. The placeholder correct
// index is random, so this path is deterministic in shape but not in content.
func FallbackQuestions(topic string, count int) []quiz.Question {
	bank := questionBank[topic]
	if len(bank) >= count {
		questions := make([]quiz.Question, count)
		copy(questions, bank[:count])
		return questions
	}

	questions := make([]quiz.Question, 0, count)
	questions = append(questions, bank...)
	for i := len(questions); i < count; i++ {
		questions = append(questions, quiz.Question{
			ID:            fmt.Sprintf("q%d", i+1),
			Text:          fmt.Sprintf("Sample question %d about %s?", i+1, topic),
			Options:       []string{"Option A", "Option B", "Option C", "Option D"},
			CorrectAnswer: rand.Intn(4),
			Explanation:   fmt.Sprintf("This is the explanation for question %d about %s.", i+1, topic),
		})
	}
	return questions
}

// Topics returns the curated topic list offered to the quiz setup form.
func Topics() []string {
	return []string{
		// Core computer science
		"Operating Systems",
		"Data Structures",
		"Algorithms",
		"Database Management Systems",
		"Computer Networks",
		"Object-Oriented Programming",
		"Software Engineering",
		"Computer Architecture",

		// Programming languages
		"Java Programming",
		"Python Programming",
		"C++ Programming",
		"JavaScript",
		"React.js",
		"Node.js",

		// Advanced topics
		"Machine Learning",
		"Artificial Intelligence",
		"Cybersecurity",
		"Cloud Computing",
		"DevOps",
		"System Design",

		// Mathematics and theory
		"Discrete Mathematics",
		"Theory of Computation",
		"Compiler Design",
		"Digital Logic Design",

		// General knowledge
		"General Knowledge",
		"Current Affairs",
		"Science",
		"History",
	}
}

var questionBank = map[string][]quiz.Question{
	"Operating Systems": {
		{
			ID:   "os1",
			Text: "What is the main purpose of an operating system?",
			Options: []string{
				"Compile programs",
				"Manage hardware resources",
				"Create databases",
				"Design user interfaces",
			},
			CorrectAnswer: 1,
			Explanation:   "The primary purpose of an OS is to manage hardware resources and provide services to applications.",
		},
		{
			ID:   "os2",
			Text: "Which scheduling algorithm gives priority to the process with the shortest execution time?",
			Options: []string{
				"FCFS",
				"SJF",
				"Round Robin",
				"Priority Scheduling",
			},
			CorrectAnswer: 1,
			Explanation:   "Shortest Job First (SJF) algorithm prioritizes processes with the shortest execution time.",
		},
		{
			ID:   "os3",
			Text: "What is a deadlock in operating systems?",
			Options: []string{
				"A crashed program",
				"A circular wait condition",
				"A memory leak",
				"A network error",
			},
			CorrectAnswer: 1,
			Explanation:   "Deadlock occurs when processes are waiting for each other in a circular chain.",
		},
	},
	"Data Structures": {
		{
			ID:   "ds1",
			Text: "What is the time complexity of searching in a balanced binary search tree?",
			Options: []string{
				"O(1)",
				"O(log n)",
				"O(n)",
				"O(n²)",
			},
			CorrectAnswer: 1,
			Explanation:   "In a balanced BST, search operations take O(log n) time due to the tree height.",
		},
		{
			ID:   "ds2",
			Text: "Which data structure follows LIFO principle?",
			Options: []string{
				"Queue",
				"Stack",
				"Array",
				"Linked List",
			},
			CorrectAnswer: 1,
			Explanation:   "Stack follows Last In First Out (LIFO) principle where the last element added is the first to be removed.",
		},
	},
	"Database Management Systems": {
		{
			ID:   "dbms1",
			Text: "What does ACID stand for in database transactions?",
			Options: []string{
				"Atomicity, Consistency, Isolation, Durability",
				"Access, Control, Integration, Data",
				"Automatic, Concurrent, Independent, Distributed",
				"Authentication, Compression, Indexing, Distribution",
			},
			CorrectAnswer: 0,
			Explanation:   "ACID represents the four key properties that guarantee reliable database transactions.",
		},
	},
	"Computer Networks": {
		{
			ID:   "cn1",
			Text: "Which layer of the OSI model is responsible for routing?",
			Options: []string{
				"Physical Layer",
				"Data Link Layer",
				"Network Layer",
				"Transport Layer",
			},
			CorrectAnswer: 2,
			Explanation:   "The Network Layer (Layer 3) handles routing and logical addressing.",
		},
	},
	"Object-Oriented Programming": {
		{
			ID:   "oop1",
			Text: "What is encapsulation in OOP?",
			Options: []string{
				"Creating multiple objects",
				"Hiding internal implementation details",
				"Inheriting from parent class",
				"Overriding methods",
			},
			CorrectAnswer: 1,
			Explanation:   "Encapsulation is the bundling of data and methods while hiding internal implementation details.",
		},
	},
}
