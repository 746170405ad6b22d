package store

// initSchema provisions the five tables and their indexes. Every statement
// uses IF NOT EXISTS so re-opening an initialized store is a no-op.
func (s *Store) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS students (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			matricule TEXT UNIQUE NOT NULL,
			last_name TEXT NOT NULL,
			first_name TEXT NOT NULL,
			section TEXT,
			group_name TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS classes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			course_name TEXT NOT NULL,
			subject_name TEXT,
			class_date DATE NOT NULL,
			group_name TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS attendance (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			student_id INTEGER NOT NULL,
			class_id INTEGER NOT NULL,
			status TEXT CHECK(status IN ('Present', 'Absent', 'Absent Justifié')) DEFAULT 'Present',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(student_id) REFERENCES students(id) ON DELETE CASCADE,
			FOREIGN KEY(class_id) REFERENCES classes(id) ON DELETE CASCADE,
			UNIQUE(student_id, class_id)
		);`,
		`CREATE TABLE IF NOT EXISTS marks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			student_id INTEGER NOT NULL,
			class_id INTEGER NOT NULL,
			score REAL CHECK(score >= 0 AND score <= 20),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(student_id) REFERENCES students(id) ON DELETE CASCADE,
			FOREIGN KEY(class_id) REFERENCES classes(id) ON DELETE CASCADE,
			UNIQUE(student_id, class_id)
		);`,
		`CREATE TABLE IF NOT EXISTS comments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			student_id INTEGER NOT NULL,
			class_id INTEGER NOT NULL,
			comment TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(student_id) REFERENCES students(id) ON DELETE CASCADE,
			FOREIGN KEY(class_id) REFERENCES classes(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_student_matricule ON students(matricule);`,
		`CREATE INDEX IF NOT EXISTS idx_student_group ON students(group_name);`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_student ON attendance(student_id);`,
		`CREATE INDEX IF NOT EXISTS idx_marks_student ON marks(student_id);`,
		`CREATE INDEX IF NOT EXISTS idx_class_date ON classes(class_date);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
