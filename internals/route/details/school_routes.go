// file: internals/route/details/school_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicController "sekolahku_backend/internals/features/school/academics/controller"
	assessController "sekolahku_backend/internals/features/school/assessments/controller"
	attendanceController "sekolahku_backend/internals/features/school/attendance/controller"
	classController "sekolahku_backend/internals/features/school/classes/controller"
	schoolController "sekolahku_backend/internals/features/school/schools/controller"
	studentController "sekolahku_backend/internals/features/school/students/controller"
	teacherController "sekolahku_backend/internals/features/school/teachers/controller"
	timetableController "sekolahku_backend/internals/features/school/timetables/controller"
)

// SchoolRoutes: data akademik per school. Prefix /o = owner platform,
// /a = staff/admin school (ditegakkan per handler lewat klaim token).
func SchoolRoutes(api fiber.Router, db *gorm.DB) {
	schoolCtl := &schoolController.SchoolHandler{DB: db}
	academicCtl := &academicController.AcademicYearHandler{DB: db}
	classCtl := &classController.ClassHandler{DB: db}
	studentCtl := &studentController.StudentHandler{DB: db}
	teacherCtl := &teacherController.TeacherHandler{DB: db}
	assessCtl := &assessController.AssessmentHandler{DB: db}
	attendanceCtl := &attendanceController.AttendanceHandler{DB: db}
	timetableCtl := &timetableController.TimetableHandler{DB: db}

	// ---------- owner ----------
	owner := api.Group("/o")
	owner.Post("/schools", schoolCtl.CreateSchool)

	// ---------- staff/admin ----------
	admin := api.Group("/a")

	admin.Patch("/schools/:school_id", schoolCtl.UpdateSchool)

	admin.Post("/academic-years", academicCtl.CreateAcademicYear)
	admin.Get("/academic-years", academicCtl.ListAcademicYears)
	admin.Post("/academic-years/:id/activate", academicCtl.ActivateAcademicYear)
	admin.Post("/terms", academicCtl.CreateTerm)
	admin.Get("/terms", academicCtl.ListTerms)

	admin.Post("/grade-levels", classCtl.CreateGradeLevel)
	admin.Get("/grade-levels", classCtl.ListGradeLevels)
	admin.Post("/classrooms", classCtl.CreateClassroom)
	admin.Get("/classrooms", classCtl.ListClassrooms)
	admin.Patch("/classrooms/:id", classCtl.UpdateClassroom)

	admin.Post("/students", studentCtl.CreateStudent)
	admin.Get("/students", studentCtl.ListStudents)
	admin.Post("/guardians", studentCtl.CreateGuardian)
	admin.Post("/guardians/:id/link", studentCtl.LinkGuardian)
	admin.Post("/enrollments", studentCtl.CreateEnrollment)
	admin.Get("/enrollments", studentCtl.ListEnrollments)
	admin.Patch("/enrollments/:id/status", studentCtl.UpdateEnrollmentStatus)

	admin.Post("/teachers", teacherCtl.CreateTeacher)
	admin.Get("/teachers", teacherCtl.ListTeachers)
	admin.Post("/teachers/:id/homeroom", teacherCtl.AssignHomeroom)

	admin.Post("/assessments", assessCtl.CreateAssessment)
	admin.Get("/assessments", assessCtl.ListAssessments)
	admin.Put("/assessments/:id/grades", assessCtl.UpsertGrade)
	admin.Get("/students/:student_id/grade-summary", assessCtl.GetStudentGradeSummary)

	admin.Post("/attendance/sessions", attendanceCtl.CreateSession)
	admin.Put("/attendance/sessions/:id/entries", attendanceCtl.UpsertEntries)
	admin.Get("/students/:student_id/attendance-recap", attendanceCtl.GetStudentRecap)

	admin.Post("/timetable-slots", timetableCtl.CreateSlot)
	admin.Get("/timetable-slots", timetableCtl.ListSlots)
	admin.Delete("/timetable-slots/:id", timetableCtl.DeleteSlot)
}
