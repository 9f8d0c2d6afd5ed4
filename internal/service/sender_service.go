package service

import (
	"fmt"
	"log"
	"time"

	"rentacar/internal/db"
	"rentacar/internal/entities"
)

type SenderService struct{}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func localTime() *time.Location {
	loc, err := time.LoadLocation("America/Guayaquil")
	if err != nil {
		loc = time.FixedZone("ECT", -5*60*60)
	}
	return loc
}

func statusPhrase(estado string) string {
	switch estado {
	case db.RentalPending:
		return "pendiente de pago"
	case db.RentalInProgress:
		return "activo"
	case db.RentalFinished:
		return "finalizado"
	case db.RentalCancelled:
		return "cancelado"
	}
	return estado
}

func (s *SenderService) SendRentalEmail(rental entities.RentalResponse, estado string) {
	loc := localTime()
	frase := statusPhrase(estado)

	subject := fmt.Sprintf("Tu alquiler en RentaCar está %s - Código: %s", frase, rental.Codigo)
	body := fmt.Sprintf(
		"Hola %s,\n\nTu alquiler en RentaCar está %s.\n\n"+
			"Detalles del alquiler:\n"+
			"Código: %s\n"+
			"Vehículo: %s (Placa: %s)\n"+
			"Inicio: %s\n"+
			"Fin: %s\n"+
			"Subtotal: %.2f\n"+
			"Depósito: %.2f\n\n"+
			"Gracias por elegir RentaCar.",
		rental.ClienteNombre, frase, rental.Codigo, rental.CarNombre, rental.Placa,
		rental.FechaInicio.In(loc).Format("02 Jan 2006"),
		rental.FechaFin.In(loc).Format("02 Jan 2006"),
		rental.Subtotal, rental.Deposito,
	)

	go func(toEmail, toName, subject, body, codigo string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, body); err != nil {
			log.Printf("ALERTA (asíncrono): Falló envío de correo para alquiler %s: %v", codigo, err)
		}
	}(rental.ClienteEmail, rental.ClienteNombre, subject, body, rental.Codigo)
}

func (s *SenderService) SendRentalSMS(rental entities.RentalResponse, estado string) {
	loc := localTime()
	message := fmt.Sprintf("RentaCar: ¡Tu alquiler %s está %s!\nInicio: %s.\nMás detalles en tu correo.",
		rental.Codigo, statusPhrase(estado),
		rental.FechaInicio.In(loc).Format("02/01 15:04"),
	)

	if err := SendSMS(rental.ClienteTelefono, message); err != nil {
		log.Printf("ALERTA: Falló el envío del SMS para el alquiler %s a %s: %v",
			rental.Codigo, rental.ClienteTelefono, err)
	}
}

// SendOverdueReminder notifies a client whose rental is past its end date.
func (s *SenderService) SendOverdueReminder(overdue entities.OverdueRental) {
	loc := localTime()
	subject := fmt.Sprintf("Tu alquiler %s está vencido", overdue.Codigo)
	body := fmt.Sprintf(
		"Hola %s,\n\nEl alquiler %s del vehículo %s (Placa: %s) venció el %s.\n"+
			"Por favor devuelve el vehículo; cada día de atraso genera una penalización sobre el valor del vehículo.\n\n"+
			"RentaCar",
		overdue.ClienteNombre, overdue.Codigo, overdue.CarNombre, overdue.Placa,
		overdue.FechaFin.In(loc).Format("02 Jan 2006"),
	)

	go func() {
		if err := SendEmailWithSendGrid(overdue.ClienteEmail, overdue.ClienteNombre, subject, body); err != nil {
			log.Printf("ALERTA (asíncrono): Falló envío de recordatorio para alquiler %s: %v", overdue.Codigo, err)
		}
	}()

	message := fmt.Sprintf("RentaCar: tu alquiler %s venció el %s. Por favor devuelve el vehículo.",
		overdue.Codigo, overdue.FechaFin.In(loc).Format("02/01"))
	if err := SendSMS(overdue.ClienteTelefono, message); err != nil {
		log.Printf("ALERTA: Falló el envío del SMS de recordatorio para %s: %v", overdue.Codigo, err)
	}
}
