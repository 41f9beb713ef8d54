package printform

const formHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <title>Relatório {{.Report.ReportNumber}}</title>
    <style>
        * {
            box-sizing: border-box;
            margin: 0;
            padding: 0;
        }
        body {
            font-family: Arial, Helvetica, sans-serif;
            font-size: 11px;
            color: #000;
            background: #fff;
            padding: 16px;
        }
        .sheet {
            max-width: 780px;
            margin: 0 auto;
            border: 2px solid #000;
        }
        .header {
            display: flex;
            justify-content: space-between;
            align-items: center;
            border-bottom: 2px solid #000;
            padding: 8px 12px;
        }
        .header h1 {
            font-size: 15px;
            text-transform: uppercase;
        }
        .header .number {
            font-size: 13px;
            font-weight: bold;
            border: 1px solid #000;
            padding: 4px 10px;
        }
        .row {
            display: flex;
            border-bottom: 1px solid #000;
        }
        .field {
            flex: 1;
            padding: 4px 8px;
            border-right: 1px solid #000;
        }
        .field:last-child {
            border-right: none;
        }
        .field .label {
            font-size: 8px;
            text-transform: uppercase;
            color: #333;
        }
        .field .value {
            font-size: 11px;
            min-height: 14px;
        }
        .section-title {
            background: #e8e8e8;
            border-bottom: 1px solid #000;
            padding: 3px 8px;
            font-size: 10px;
            font-weight: bold;
            text-transform: uppercase;
        }
        .types {
            display: flex;
            gap: 24px;
            padding: 6px 12px;
            border-bottom: 1px solid #000;
            font-size: 12px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
        }
        th, td {
            border: 1px solid #000;
            border-left: none;
            border-right: 1px solid #000;
            padding: 3px 5px;
            font-size: 9px;
            text-align: left;
            height: 18px;
        }
        th {
            background: #e8e8e8;
            text-transform: uppercase;
            font-size: 8px;
        }
        td:last-child, th:last-child {
            border-right: none;
        }
        .description {
            min-height: 90px;
            padding: 6px 10px;
            border-bottom: 1px solid #000;
            white-space: pre-wrap;
        }
        .money {
            text-align: right;
        }
        .total-row td {
            font-weight: bold;
        }
        .signatures {
            display: flex;
            margin-top: 40px;
            padding: 0 12px 16px;
            gap: 48px;
        }
        .signature {
            flex: 1;
            border-top: 1px solid #000;
            text-align: center;
            padding-top: 4px;
            font-size: 9px;
            text-transform: uppercase;
        }
        @media print {
            body {
                padding: 0;
            }
            .sheet {
                max-width: none;
                border-width: 1px;
            }
        }
    </style>
</head>
<body onload="window.print()">
    <div class="sheet">
        <div class="header">
            <div>
                <h1>Relatório de Atendimento Técnico</h1>
                <div>Manutenção de Equipamentos para Postos de Combustíveis</div>
            </div>
            <div class="number">Nº {{.Report.ReportNumber}}</div>
        </div>

        <div class="row">
            <div class="field" style="flex: 2;">
                <div class="label">Razão Social</div>
                <div class="value">{{.Report.CompanyName}}</div>
            </div>
            <div class="field">
                <div class="label">CNPJ</div>
                <div class="value">{{formatCNPJ .Report.TaxID}}</div>
            </div>
            <div class="field">
                <div class="label">Inscrição Estadual</div>
                <div class="value">{{.Report.StateRegistration}}</div>
            </div>
        </div>
        <div class="row">
            <div class="field" style="flex: 2;">
                <div class="label">Endereço</div>
                <div class="value">{{.Report.Address}}</div>
            </div>
            <div class="field">
                <div class="label">Cidade / UF</div>
                <div class="value">{{.Report.CityState}}</div>
            </div>
        </div>
        <div class="row">
            <div class="field">
                <div class="label">Data do Serviço</div>
                <div class="value">{{formatDate .Report.ServiceDate}}</div>
            </div>
            <div class="field">
                <div class="label">Hora Início</div>
                <div class="value">{{.Report.StartTime}}</div>
            </div>
            <div class="field">
                <div class="label">Hora Término</div>
                <div class="value">{{.Report.EndTime}}</div>
            </div>
            <div class="field">
                <div class="label">Total de Horas</div>
                <div class="value">{{.Report.TotalDuration}}</div>
            </div>
        </div>

        <div class="types">
            <span>{{checkbox (hasType .Report "preventive")}} Preventiva</span>
            <span>{{checkbox (hasType .Report "corrective")}} Corretiva</span>
            <span>{{checkbox (hasType .Report "pending")}} Pendência</span>
            <span>{{checkbox (hasType .Report "extra")}} Extra</span>
        </div>

        <div class="section-title">Equipamentos</div>
        <table>
            <tr>
                <th>Bico</th>
                <th>Marca</th>
                <th>Modelo</th>
                <th>Nº Série</th>
                <th>Produto</th>
                <th>Lacre Aferição</th>
                <th>Portaria</th>
                <th>Lacre Retirado</th>
                <th>Lacre Instalado</th>
                <th>Lacre Rep. Retirado</th>
                <th>Lacre Rep. Instalado</th>
            </tr>
            {{range .EquipmentList}}
            <tr>
                <td>{{.NozzleNumber}}</td>
                <td>{{.Brand}}</td>
                <td>{{.Model}}</td>
                <td>{{.SerialNumber}}</td>
                <td>{{.Product}}</td>
                <td>{{.CalibrationSeal}}</td>
                <td>{{.ApprovalOrder}}</td>
                <td>{{.SealRemoved}}</td>
                <td>{{.SealInstalled}}</td>
                <td>{{.RepairSealRemoved}}</td>
                <td>{{.RepairSealInstalled}}</td>
            </tr>
            {{end}}
        </table>

        <div class="section-title">Descrição dos Serviços Executados</div>
        <div class="description">{{.Report.WorkDescription}}</div>

        <div class="section-title">Peças Utilizadas</div>
        <table>
            <tr>
                <th style="width: 55%;">Descrição</th>
                <th style="width: 10%;">Qtd</th>
                <th style="width: 17%;">Valor Unitário</th>
                <th style="width: 18%;">Valor Total</th>
            </tr>
            {{range .PartsList}}
            <tr>
                <td>{{.Description}}</td>
                <td>{{if .Description}}{{.Quantity}}{{end}}</td>
                <td class="money">{{if .Description}}{{formatCurrency .UnitPrice}}{{end}}</td>
                <td class="money">{{if .Description}}{{formatCurrency .LineTotal}}{{end}}</td>
            </tr>
            {{end}}
            <tr class="total-row">
                <td colspan="3" class="money">Total</td>
                <td class="money">{{formatCurrency .Report.PartsTotal}}</td>
            </tr>
        </table>

        <div class="section-title">Testes de Aferição</div>
        <div class="row">
            <div class="field">
                <div class="label">ETC</div>
                <div class="value">{{.Report.ETC}}</div>
            </div>
            <div class="field">
                <div class="label">ETA</div>
                <div class="value">{{.Report.ETA}}</div>
            </div>
            <div class="field">
                <div class="label">GC</div>
                <div class="value">{{.Report.GC}}</div>
            </div>
            <div class="field">
                <div class="label">GT</div>
                <div class="value">{{.Report.GT}}</div>
            </div>
        </div>
        <div class="row">
            <div class="field">
                <div class="label">Observações</div>
                <div class="value">{{.Report.TestNotes}}</div>
            </div>
        </div>

        <div class="signatures">
            <div class="signature">{{.Report.TechnicianName}}<br>Técnico Responsável</div>
            <div class="signature">Cliente</div>
        </div>
    </div>
</body>
</html>
`
