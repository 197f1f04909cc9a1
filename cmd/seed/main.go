package main

import (
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/almondloverr/CRM/internal/database"
	"github.com/almondloverr/CRM/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "crm.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data, children first so cascade keys stay happy
	log.Println("Cleaning old data...")
	for _, table := range []string{
		"activities", "pickup_deliveries", "materials",
		"technical_specifications", "orders", "contracts", "firms",
		"clients", "employees", "job_titles", "departments", "events",
		"users",
	} {
		db.Exec("DELETE FROM " + table)
	}

	log.Println("Seeding reference data...")

	production := domain.Department{Name: "Производство", Description: "Цех изготовления и реставрации"}
	logistics := domain.Department{Name: "Логистика", Description: "Забор и доставка заказов"}
	office := domain.Department{Name: "Офис", Description: "Работа с клиентами"}
	mustCreate(db, &production, &logistics, &office)

	managerLvl, workerLvl, directorLvl := 2, 1, 3
	manager := domain.JobTitle{Name: "Менеджер", AccessLvl: &managerLvl}
	worker := domain.JobTitle{Name: "Рабочий", AccessLvl: &workerLvl}
	director := domain.JobTitle{Name: "Управляющий", AccessLvl: &directorLvl}
	mustCreate(db, &manager, &worker, &director)

	log.Println("Seeding users and employees...")

	adminUser := seedUser(db, "admin", "admin123", true)
	managerUser := seedUser(db, "mpetrov", "manager123", true)
	workerUser := seedUser(db, "skuznetsov", "worker123", false)

	salaryDirector, salaryManager, salaryWorker := 120000, 80000, 60000
	employees := []domain.Employee{
		{
			UserID:    &adminUser.ID,
			FirstName: "Дмитрий", LastName: "Волков", MiddleName: "Андреевич",
			PositionID: director.ID, DepartmentID: office.ID,
			Status:         domain.EmployeeWorking,
			EmploymentDate: date(2022, 3, 1),
			Citizenship:    "РФ",
			TypeSalary:     domain.SalaryFixed, Salary: &salaryDirector,
		},
		{
			UserID:    &managerUser.ID,
			FirstName: "Иван", LastName: "Петров", MiddleName: "Сергеевич",
			PositionID: manager.ID, DepartmentID: office.ID,
			Status:         domain.EmployeeWorking,
			EmploymentDate: date(2023, 6, 12),
			Citizenship:    "РФ",
			TypeSalary:     domain.SalaryFixed, Salary: &salaryManager,
		},
		{
			UserID:    &workerUser.ID,
			FirstName: "Сергей", LastName: "Кузнецов", MiddleName: "Олегович",
			PositionID: worker.ID, DepartmentID: production.ID,
			Status:         domain.EmployeeWorking,
			EmploymentDate: date(2024, 1, 20),
			Citizenship:    "РФ",
			TypeSalary:     domain.SalaryNotFixed, Salary: &salaryWorker,
		},
		{
			FirstName: "Олег", LastName: "Смирнов", MiddleName: "Игоревич",
			PositionID: worker.ID, DepartmentID: logistics.ID,
			Status:         domain.EmployeeProbation,
			EmploymentDate: date(2026, 2, 2),
			Citizenship:    "РФ",
			TypeSalary:     domain.SalaryNotFixed,
		},
	}
	for i := range employees {
		mustCreate(db, &employees[i])
	}

	log.Println("Seeding a demo order graph...")

	client := domain.Client{
		FirstName: "Анна", LastName: "Сидорова", MiddleName: "Павловна",
		ContactNumber: "+79990001122",
		Address:       "г. Казань, ул. Ленина, 5",
	}
	mustCreate(db, &client)

	contract := domain.Contract{
		Num:      "Д-2026/041",
		ClientID: client.ID,

		CreateDate:     date(2026, 8, 1),
		CompletionDate: date(2026, 8, 21),
		Duration:       20,

		TotalValue:    150000,
		TotalWorkCost: 150000,
		PaymentType:   domain.PaymentCash,

		PrepaymentShare: 30, PrepaymentValue: 45000,
		IsPrepaymentPaid: true,
		PostpaymentValue: 105000,
	}
	mustCreate(db, &contract)

	order := domain.Order{
		Number:      "З-041",
		ContractID:  contract.ID,
		ManagerID:   employees[1].ID,
		Source:      domain.SourceSite,
		Status:      domain.OrderInProgress,
		Executor1ID: &employees[2].ID,
	}
	mustCreate(db, &order)

	wt2 := domain.WorkRestoration
	mustCreate(db, &domain.TechnicalSpecification{
		OrderID:        order.ID,
		ItemsQty:       1,
		ShortDescr:     "Диван угловой",
		FullDescr:      "Перетяжка с заменой наполнителя, реставрация каркаса",
		WorkType1:      domain.WorkReupholster,
		WorkType2:      &wt2,
		FurnitureType1: domain.FurnitureSoft,
	})

	cost := 12000.0
	mustCreate(db, &domain.Material{
		OrderID:     order.ID,
		Name:        "Велюр синий",
		InStock:     true,
		Cost:        &cost,
		OrderStatus: domain.MaterialOrdered,
		PayStatus:   domain.MaterialPaid,
	})

	pickupDate := date(2026, 8, 3)
	mustCreate(db, &domain.PickupDelivery{
		OrderID:      order.ID,
		IsPicked:     true,
		PickupType:   domain.PickupCourier,
		PickupDate:   &pickupDate,
		PickupTime:   "10:30",
		PickupGuyID:  &employees[3].ID,
		DeliveryType: domain.DeliveryCourier,
	})

	mustCreate(db, &domain.Activity{
		OrderID:       order.ID,
		EmployeeID:    employees[2].ID,
		ActivityDescr: "Демонтаж старой обивки",
		Status:        domain.ActivityInProgress,
		DateStart:     date(2026, 8, 5),
		TotalWorkCost: 8000,
	})

	mustCreate(db, &domain.Event{
		Title: "Замер у клиента",
		Start: time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local),
		End:   time.Date(2026, 9, 2, 12, 0, 0, 0, time.Local),
	})

	log.Println("Seed complete.")
	log.Println("Logins: admin/admin123 (управляющий), mpetrov/manager123 (менеджер), skuznetsov/worker123 (рабочий)")
}

func seedUser(db *gorm.DB, username, password string, isStaff bool) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	u := &domain.User{Username: username, PasswordHash: string(hash), IsStaff: isStaff}
	mustCreate(db, u)
	return u
}

func mustCreate(db *gorm.DB, rows ...interface{}) {
	for _, row := range rows {
		if err := db.Omit(clause.Associations).Create(row).Error; err != nil {
			log.Fatalf("seed %T: %v", row, err)
		}
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
